// Package hcl provides the HCL implementation of the config.Loader
// interface.
//
// A style file may declare a `vars` block, any number of `type_style` and
// `status_style` blocks, and the top-level `replace_defaults` flag:
//
//	replace_defaults = false
//
//	vars {
//	  base = "color:#fff,stroke:#333"
//	}
//
//	type_style "Polish" {
//	  style = "fill:#123456,${var.base}"
//	}
//
//	status_style "Aborted" {
//	  style = "stroke:#999,stroke-width:6px"
//	}
//
// Variables are evaluated first and exposed to style expressions under `var`.
package hcl

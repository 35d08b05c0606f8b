// Package viewer produces the browser-facing artifacts of a rendered
// diagram: the standalone HTML page with hover tooltips and the share links
// for the mermaid.live editor and the mermaid.ink image service.
package viewer

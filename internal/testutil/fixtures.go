package testutil

// SmallPipelineSTAR is an 11-job pipeline:
//
//	Import -> Extract -> JoinStar -> Refine3D
//	Refine3D -> MaskCreate -> Class3D -> Select
//	Refine3D -> Class3D, CtfRefine, PostProcess, MultiBody -> Subtract
//	MaskCreate -> PostProcess
//
// Class3D is Failed, Subtract is Running, everything else Succeeded. The input
// edges also contain a self-reference (Refine3D reading its own output), a
// duplicated dependency and a node without a producer.
const SmallPipelineSTAR = `
# version 30001

data_pipeline_general

_rlnPipeLineJobCounter                       12

# version 30001

data_pipeline_processes

loop_
_rlnPipeLineProcessName #1
_rlnPipeLineProcessAlias #2
_rlnPipeLineProcessTypeLabel #3
_rlnPipeLineProcessStatusLabel #4
Import/job001/       None relion.importmovies  Succeeded
Extract/job002/       None relion.extract  Succeeded
JoinStar/job003/       None relion.joinstar.particles  Succeeded
Refine3D/job004/       None relion.refine3d  Succeeded
MaskCreate/job005/       None relion.maskcreate  Succeeded
Class3D/job006/       None relion.class3d  Failed
Select/job007/ Select/j007_best_class/ relion.select.onvalue  Succeeded
CtfRefine/job008/       None relion.ctfrefine  Succeeded
PostProcess/job009/       None relion.postprocess  Succeeded
MultiBody/job010/       None relion.multibody  Succeeded
Subtract/job011/       None relion.subtract  Running

# version 30001

data_pipeline_nodes

loop_
_rlnPipeLineNodeName #1
_rlnPipeLineNodeTypeLabel #2
Import/job001/movies.star MicrographMovieGroupMetadata.star.relion
Extract/job002/particles.star ParticleGroupMetadata.star.relion
JoinStar/job003/join_particles.star ParticleGroupMetadata.star.relion
Refine3D/job004/run_data.star ParticleGroupMetadata.star.relion.refine3d
Refine3D/job004/run_class001.mrc DensityMap.mrc.relion.refine3d
Refine3D/job004/run_half1_class001_unfil.mrc DensityMap.mrc.relion.halfmap.refine3d
MaskCreate/job005/mask.mrc Mask3D.mrc.relion
Class3D/job006/run_it025_optimiser.star ProcessData.star.relion.optimiser.class3d
Select/job007/particles.star ParticleGroupMetadata.star.relion
CtfRefine/job008/particles_ctf_refine.star ParticleGroupMetadata.star.relion.ctfrefine
PostProcess/job009/postprocess.star ProcessData.star.relion.postprocess
MultiBody/job010/run_data.star ParticleGroupMetadata.star.relion.multibody
Subtract/job011/particles_subtracted.star ParticleGroupMetadata.star.relion.subtracted

# version 30001

data_pipeline_input_edges

loop_
_rlnPipeLineEdgeFromNode #1
_rlnPipeLineEdgeProcess #2
External/movies.star Import/job001/
Import/job001/movies.star Extract/job002/
Extract/job002/particles.star JoinStar/job003/
JoinStar/job003/join_particles.star Refine3D/job004/
Refine3D/job004/run_data.star Refine3D/job004/
Refine3D/job004/run_class001.mrc MaskCreate/job005/
Refine3D/job004/run_data.star Class3D/job006/
Refine3D/job004/run_class001.mrc Class3D/job006/
MaskCreate/job005/mask.mrc Class3D/job006/
Class3D/job006/run_it025_optimiser.star Select/job007/
Refine3D/job004/run_data.star CtfRefine/job008/
Refine3D/job004/run_half1_class001_unfil.mrc PostProcess/job009/
MaskCreate/job005/mask.mrc PostProcess/job009/
Refine3D/job004/run_data.star MultiBody/job010/
MultiBody/job010/run_data.star Subtract/job011/

# version 30001

data_pipeline_output_edges

loop_
_rlnPipeLineEdgeProcess #1
_rlnPipeLineEdgeToNode #2
Import/job001/ Import/job001/movies.star
Extract/job002/ Extract/job002/particles.star
JoinStar/job003/ JoinStar/job003/join_particles.star
Refine3D/job004/ Refine3D/job004/run_data.star
Refine3D/job004/ Refine3D/job004/run_class001.mrc
Refine3D/job004/ Refine3D/job004/run_half1_class001_unfil.mrc
MaskCreate/job005/ MaskCreate/job005/mask.mrc
Class3D/job006/ Class3D/job006/run_it025_optimiser.star
Select/job007/ Select/job007/particles.star
CtfRefine/job008/ CtfRefine/job008/particles_ctf_refine.star
PostProcess/job009/ PostProcess/job009/postprocess.star
MultiBody/job010/ MultiBody/job010/run_data.star
Subtract/job011/ Subtract/job011/particles_subtracted.star
`

// SmallPipelineEdgeCount is the number of distinct job-to-job edges in
// SmallPipelineSTAR.
const SmallPipelineEdgeCount = 12

// smallProjectFiles are the job directories of the small project, relative
// to the project root.
var smallProjectFiles = map[string]string{
	"Import/job001/note.txt": ` ++++ Executing new job on Mon Jun  2 10:00:01 2025
 ++++ with the following command(s):
` + "`which relion_import`" + ` --do_movies --optics_group_name "opticsGroup1" --i "Movies/*.tiff" --odir Import/job001/ --ofile movies.star --pipeline_control Import/job001/
 ++++
`,
	"Refine3D/job004/note.txt": ` ++++ Executing new job on Mon Jun  2 11:12:40 2025
 ++++ with the following command(s):
` + "`which relion_refine_mpi`" + ` --o Refine3D/job004/run --auto_refine --split_random_halves --i JoinStar/job003/join_particles.star --particle_diameter 280 --pipeline_control Refine3D/job004/
 ++++
 ++++ Executing new job on Tue Jun  3 08:30:02 2025
 ++++ with the following command(s):
` + "`which relion_refine_mpi`" + ` --continue Refine3D/job004/run_it012_optimiser.star --o Refine3D/job004/run --particle_diameter 300 --pipeline_control Refine3D/job004/
 ++++
`,
	"Refine3D/job004/run_model.star": `
# version 30001

data_model_general

_rlnReferenceDimensionality                        3
_rlnNrClasses                                      1

# version 30001

data_model_classes

loop_
_rlnReferenceImage #1
_rlnClassDistribution #2
_rlnAccuracyRotations #3
_rlnAccuracyTranslationsAngst #4
_rlnEstimatedResolution #5
_rlnOverallFourierCompleteness #6
Refine3D/job004/run_class001.mrc     1.000000     1.500000     0.350000     3.200000     0.950000

# version 30001

data_model_class_1

loop_
_rlnSpectralIndex #1
_rlnResolution #2
     0     0.000000
     1     0.002500
`,
	"Class3D/job006/note.txt": ` ++++ Executing new job on Wed Jun  4 14:00:00 2025
 ++++ with the following command(s):
` + "`which relion_refine_mpi`" + ` --o Class3D/job006/run --i Refine3D/job004/run_data.star --ref Refine3D/job004/run_class001.mrc --solvent_mask MaskCreate/job005/mask.mrc --K 3 --iter 25 --pipeline_control Class3D/job006/
 ++++
`,
	"Class3D/job006/run_it020_model.star": `
data_model_classes

loop_
_rlnReferenceImage #1
_rlnClassDistribution #2
_rlnAccuracyRotations #3
_rlnAccuracyTranslationsAngst #4
_rlnEstimatedResolution #5
_rlnOverallFourierCompleteness #6
Class3D/job006/run_it020_class001.mrc     0.400000     2.100000     0.600000     5.000000     0.900000
Class3D/job006/run_it020_class002.mrc     0.350000     2.900000     0.800000     6.000000     0.850000
Class3D/job006/run_it020_class003.mrc     0.250000     4.000000     1.100000     8.000000     0.700000
`,
	"Class3D/job006/run_it025_model.star": `
# version 30001

data_model_general

_rlnNrClasses                                      3

# version 30001

data_model_classes

loop_
_rlnReferenceImage #1
_rlnClassDistribution #2
_rlnAccuracyRotations #3
_rlnAccuracyTranslationsAngst #4
_rlnEstimatedResolution #5
_rlnOverallFourierCompleteness #6
Class3D/job006/run_it025_class001.mrc     0.452000     1.900000     0.520000     4.500000     0.930000
Class3D/job006/run_it025_class002.mrc     0.318000     2.400000     0.710000     5.200000     0.880000
Class3D/job006/run_it025_class003.mrc     0.230000     3.800000     1.050000     7.100000     0.760000
`,
	"Class3D/job006/run_it025_optimiser.star": "data_optimiser_general\n_rlnOutputRootName Class3D/job006/run\n",
}

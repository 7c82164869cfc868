// Package hclconfig reads optimizer settings from an HCL file.
//
// A settings file may contain one optimizer block and one output block:
//
//	optimizer {
//	  assignment_prefix = "Y"
//	  terminal_name     = "end"
//	  dead_stores       = true
//	}
//
//	output {
//	  base_dir   = "${env.HOME}/Desktop"
//	  dir_prefix = "Optimized_"
//	}
//
// Expressions are evaluated with an env object holding the process
// environment. Attributes that are absent keep their default values.
package hclconfig

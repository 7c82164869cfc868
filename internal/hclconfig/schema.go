package hclconfig

import "github.com/hashicorp/hcl/v2"

// fileRoot decodes all top-level blocks of a settings file.
type fileRoot struct {
	Optimizer *optimizerBlock `hcl:"optimizer,block"`
	Output    *outputBlock    `hcl:"output,block"`
	Remain    hcl.Body        `hcl:",remain"`
}

type optimizerBlock struct {
	AssignmentPrefix *string `hcl:"assignment_prefix,optional"`
	TerminalName     *string `hcl:"terminal_name,optional"`
	MergeBlocks      *bool   `hcl:"merge_blocks,optional"`
	ExtractCommon    *bool   `hcl:"extract_common,optional"`
	DeadStores       *bool   `hcl:"dead_stores,optional"`
	CompactIDs       *bool   `hcl:"compact_ids,optional"`
	MaxRestarts      *int    `hcl:"max_restarts,optional"`
}

type outputBlock struct {
	BaseDir   *string `hcl:"base_dir,optional"`
	DirPrefix *string `hcl:"dir_prefix,optional"`
}

// Package catalog loads tool, prompt and resource definitions from YAML files.
//
// An app directory has three subdirectories:
//
//	app/tools/*.yaml
//	app/prompts/*.yaml
//	app/resources/*.yaml
//
// Each file holds one definition or a list of them. Every definition carries a
// category, which ends up in the item's _meta and in the lineage export.
//
// Tool responses and prompt messages are text/template strings with the sprig
// function library, rendered with the call arguments:
//
//	name: greet
//	category: example
//	arguments:
//	  - name: who
//	    required: true
//	response: "Hello {{ .who | title }}"
package catalog

package hcl

import "github.com/hashicorp/hcl/v2"

// fileRoot is the top-level structure of a project file.
type fileRoot struct {
	Name        string            `hcl:"name,optional"`
	Description string            `hcl:"description,optional"`
	Profiles    []*profileBlock   `hcl:"profile,block"`
	Tasks       []*taskBlock      `hcl:"task,block"`
	Extensions  []*extensionBlock `hcl:"extension,block"`
}

// profileBlock is a `profile "<name>"` block.
type profileBlock struct {
	Name        string   `hcl:"name,label"`
	Description string   `hcl:"description,optional"`
	Tasks       []string `hcl:"tasks,optional"`
}

// taskBlock is a `task "<name>"` block. Calls keep their source order.
type taskBlock struct {
	Name        string       `hcl:"name,label"`
	Description string       `hcl:"description,optional"`
	Calls       []*callBlock `hcl:"call,block"`
}

// callBlock is a `call "<type>"` block. Its attributes are decoded by hand
// because everything besides the reserved keys is a free-form option.
type callBlock struct {
	Type string   `hcl:"type,label"`
	Body hcl.Body `hcl:",remain"`
}

// extensionBlock is an `extension "<id>"` block holding module settings.
type extensionBlock struct {
	ID   string   `hcl:"id,label"`
	Body hcl.Body `hcl:",remain"`
}

// Reserved call attributes.
const (
	attrArguments    = "arguments"
	attrFailOnError  = "fail_on_error"
	attrSuccessCodes = "success_codes"
	attrFileset      = "fileset"
)

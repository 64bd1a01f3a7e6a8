package course

type Type string

const (
	TypeInternal Type = "internal"
	TypeExternal Type = "external"
)

var Types = []string{string(TypeInternal), string(TypeExternal)}

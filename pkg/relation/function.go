package relation

// Function is a user-defined SQL or PL/pgSQL function.
type Function struct {
	// Name of the function.
	Name Name

	// Arguments is the identity argument list, without defaults, as
	// pg_get_function_identity_arguments renders it.
	Arguments string

	// Definition is the CREATE OR REPLACE FUNCTION statement from
	// pg_get_functiondef.
	Definition string
}

// Signature is the name with its argument types, as DROP FUNCTION needs
// it to tell overloads apart.
func (f Function) Signature() string {
	return f.Name.Qualified() + "(" + f.Arguments + ")"
}

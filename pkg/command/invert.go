package command

import "slices"

// Invert returns the command that undoes c. Operations that destroy or
// change a definition need to know the version to go back to, without it
// the command cannot be inverted. The inverse never carries a revert
// version or an inline SQL definition.
func Invert(c Command) (Command, error) {
	res := Command{Op: c.Op, Name: c.Name}
	mat := cloneMaterialized(c.Args.Materialized)

	switch c.Op {
	case CreateView:
		res.Op = DropView
		res.Args = Args{Materialized: mat}
		return res, nil

	case CreateFunction:
		res.Op = DropFunction
		return res, nil

	case DropFunction:
		if c.Args.RevertToVersion == 0 {
			return Command{}, IrreversibleOperationError(c)
		}
		res.Op = CreateFunction

	case UpdateFunction:
		if c.Args.RevertToVersion == 0 {
			return Command{}, IrreversibleOperationError(c)
		}

	case DropView:
		if c.Args.RevertToVersion == 0 {
			return Command{}, IrreversibleOperationError(c)
		}
		res.Op = CreateView

	case UpdateView:
		if c.Args.RevertToVersion == 0 {
			return Command{}, IrreversibleOperationError(c)
		}

	case ReplaceView:
		if c.Args.RevertToVersion == 0 {
			return Command{}, IrreversibleOperationError(c)
		}
		if c.To != "" {
			res.Name, res.To = c.To, c.Name
		}

	case RenameView:
		if c.Args.RevertToVersion == 0 {
			return Command{}, IrreversibleOperationError(c)
		}
		res.Name, res.To = c.To, c.Name

	default:
		return Command{}, UnknownOperationError(c.Op)
	}

	res.Args = Args{Version: c.Args.RevertToVersion, Materialized: mat}
	return res, nil
}

// InvertAll inverts a batch of commands. The inverses come in reverse
// issuance order. Nothing is returned if any command is irreversible.
func InvertAll(cmds []Command) ([]Command, error) {
	res := make([]Command, 0, len(cmds))
	for _, c := range slices.Backward(cmds) {
		inv, err := Invert(c)
		if err != nil {
			return nil, err
		}
		res = append(res, inv)
	}
	return res, nil
}

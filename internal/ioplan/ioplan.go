// Package ioplan reads plan files: YAML lists of commands that are applied
// as one batch.
//
//	- op: create_view
//	  name: reports
//	  args:
//	    version: 1
//	    materialized: true
//	- op: update_view
//	  name: stats.daily
//	  args:
//	    version: 3
//	    revert_to_version: 2
//	    materialized:
//	      side_by_side: true
package ioplan

import (
	"fmt"
	"io"
	"os"

	"github.com/gnames/gnviews/pkg/command"
	"github.com/gnames/gnviews/pkg/lifecycle"
	"github.com/gnames/gnviews/pkg/relation"
	"gopkg.in/yaml.v3"
)

type planCommand struct {
	Op   string   `yaml:"op"`
	Name string   `yaml:"name"`
	To   string   `yaml:"to"`
	Args planArgs `yaml:"args"`
}

type planArgs struct {
	Version         int       `yaml:"version"`
	SQLDefinition   string    `yaml:"sql_definition"`
	RevertToVersion int       `yaml:"revert_to_version"`
	Materialized    yaml.Node `yaml:"materialized"`
}

// Load reads commands from a plan file.
func Load(path string) ([]command.Command, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, PlanReadError(path, err)
	}
	defer f.Close()

	res, err := Read(f)
	if err != nil {
		return nil, PlanReadError(path, err)
	}
	return res, nil
}

// Read decodes commands from YAML. Operations and relation names are
// checked, option combinations are left to the statements.
func Read(r io.Reader) ([]command.Command, error) {
	var plan []planCommand
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&plan); err != nil && err != io.EOF {
		return nil, err
	}

	res := make([]command.Command, 0, len(plan))
	for i, p := range plan {
		c, err := p.command()
		if err != nil {
			return nil, fmt.Errorf("command %d: %w", i+1, err)
		}
		res = append(res, c)
	}
	return res, nil
}

func (p planCommand) command() (command.Command, error) {
	res := command.Command{
		Op:   command.Op(p.Op),
		Name: p.Name,
		To:   p.To,
		Args: command.Args{
			Version:         p.Args.Version,
			SQLDefinition:   p.Args.SQLDefinition,
			RevertToVersion: p.Args.RevertToVersion,
		},
	}
	if !res.Op.Valid() {
		return res, command.UnknownOperationError(res.Op)
	}
	for _, n := range []string{p.Name, p.To} {
		if n == "" {
			continue
		}
		if _, err := relation.ParseName(n); err != nil {
			return res, err
		}
	}
	if p.Name == "" {
		return res, fmt.Errorf("%s without a name", p.Op)
	}

	m, err := materialized(p.Args.Materialized)
	if err != nil {
		return res, err
	}
	res.Args.Materialized = m
	return res, nil
}

// materialized accepts either a boolean or a mapping of options.
func materialized(n yaml.Node) (*lifecycle.MaterializedOptions, error) {
	switch n.Kind {
	case 0:
		return nil, nil
	case yaml.ScalarNode:
		var ok bool
		if err := n.Decode(&ok); err != nil {
			return nil, err
		}
		if !ok {
			return nil, nil
		}
		return &lifecycle.MaterializedOptions{}, nil
	default:
		var res lifecycle.MaterializedOptions
		if err := n.Decode(&res); err != nil {
			return nil, err
		}
		return &res, nil
	}
}

// Write encodes commands as a plan.
func Write(w io.Writer, cmds []command.Command) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cmds); err != nil {
		return err
	}
	return enc.Close()
}

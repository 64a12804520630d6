package main

import (
	"github.com/spf13/cobra"

	"github.com/katalvlaran/isinglat/lattice"
)

type geometryInfo struct {
	Name            string   `yaml:"name"`
	SublatticeShape []int    `yaml:"sublattice_shape"`
	Couplings       []string `yaml:"couplings"`
	Spatial         int      `yaml:"spatial"`
}

func newGeometriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "geometries",
		Short: "List the built-in lattice geometries and their couplings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var out []geometryInfo
			for _, name := range lattice.Geometries() {
				g, err := lattice.NewGeometry(name)
				if err != nil {
					return err
				}
				out = append(out, geometryInfo{
					Name:            g.Name,
					SublatticeShape: g.SublatticeShape,
					Couplings:       g.CouplingNames(),
					Spatial:         g.Spatial,
				})
			}
			return writeYAML(cmd.OutOrStdout(), out)
		},
	}
}

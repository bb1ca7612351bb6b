/*
 * Copyright © 2025 Modular Hub, All rights reserved.
 */

// Command schemadump prints every registered table schema as YAML, for
// provisioning and for eyeballing index layouts.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/modularhub/tenantdir"
	"github.com/modularhub/tenantdir/registry"

	// Register the directory's entity schemas.
	_ "github.com/modularhub/tenantdir/models"
)

var (
	versionFlag = flag.Bool("version", false, "Show version information")
	vFlag       = flag.Bool("v", false, "Show version information (short)")
	outputFlag  = flag.String("o", "", "Write output to file instead of stdout")
)

type indexDump struct {
	Name  string `yaml:"name,omitempty"`
	Hash  string `yaml:"hash"`
	Range string `yaml:"range,omitempty"`
}

type schemaDump struct {
	Table      string      `yaml:"table"`
	Primary    indexDump   `yaml:"primary"`
	Indexes    []indexDump `yaml:"indexes,omitempty"`
	Attributes []string    `yaml:"attributes"`
}

func main() {
	flag.Parse()

	if *versionFlag || *vFlag {
		info := tenantdir.GetVersionInfo()
		fmt.Printf("tenantdir schemadump version %s\n", info.Version)
		fmt.Printf("Git commit: %s\n", info.GitCommit)
		fmt.Printf("Build date: %s\n", info.BuildDate)
		fmt.Printf("Go version: %s\n", info.GoVersion)
		os.Exit(0)
	}

	schemas := registry.Schemas()
	types := make([]string, 0, len(schemas))
	for t := range schemas {
		types = append(types, t)
	}
	sort.Strings(types)

	dump := make(map[string]schemaDump, len(schemas))
	for _, t := range types {
		s := schemas[t]
		d := schemaDump{
			Table: s.TableName,
			Primary: indexDump{
				Hash:  s.Primary.HashAttribute,
				Range: s.Primary.RangeAttribute,
			},
			Attributes: s.Attributes,
		}
		for _, idx := range s.Indexes {
			d.Indexes = append(d.Indexes, indexDump{
				Name:  idx.Name,
				Hash:  idx.HashAttribute,
				Range: idx.RangeAttribute,
			})
		}
		dump[t] = d
	}

	out, err := yaml.Marshal(dump)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to marshal schemas: %v\n", err)
		os.Exit(1)
	}

	if *outputFlag != "" {
		if err := os.WriteFile(*outputFlag, out, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write %s: %v\n", *outputFlag, err)
			os.Exit(1)
		}
		return
	}
	fmt.Print(string(out))
}

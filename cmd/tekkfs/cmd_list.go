// TekkFS - CLI list verb
// Copyright (C) 2026 RuneTekk Development; All Rights Reserved
// <tekkfs (at) runetekk (dot) dev>

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.

// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.

// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/RuneTekk/TekkFS"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var cmdList = &cobra.Command{
	Use:   "list [flags] ARCHIVE_ID",
	Short: "List the entries of a package without decompressing them",
	Long: `
The "list" command reads ARCHIVE_ID, parses it as a package, and prints its
entry table (name hash, uncompressed and compressed size) as JSON.

EXIT STATUS
===========

Exit status is 0 if the command was successful, and non-zero if there was
any error.
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		archiveID, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			return fmt.Errorf("archive id: %w", err)
		}

		return runList(listOptions, uint32(archiveID))
	},
}

type listOptionsType struct {
	storeFlags
	Flat   bool
	Export string
}

var listOptions listOptionsType

func init() {
	cmdRoot.AddCommand(cmdList)
	addStoreFlags(cmdList, &listOptions.storeFlags)
	cmdList.Flags().BoolVar(&listOptions.Flat, "flat", false, "print the manifest as a single flattened key/value map")
	cmdList.Flags().StringVar(&listOptions.Export, "export-dir", "", "also write the manifest to a uuid-tagged file in this directory")
}

func runList(opts listOptionsType, archiveID uint32) error {
	store, err := opts.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	blob, err := store.GetErr(archiveID)
	if err != nil {
		return fmt.Errorf("get archive %d: %w", archiveID, err)
	}

	pkg, err := tekkfs.ParsePackage(blob)
	if err != nil {
		return fmt.Errorf("parse archive %d: %w", archiveID, err)
	}

	manifest := tekkfs.BuildManifest(archiveID, pkg)

	var out []byte
	if opts.Flat {
		flat, err := tekkfs.FlattenManifest(manifest)
		if err != nil {
			return err
		}
		out, err = json.MarshalIndent(flat, "", "  ")
		if err != nil {
			return err
		}
	} else {
		out, err = json.MarshalIndent(manifest, "", "  ")
		if err != nil {
			return err
		}
	}

	if opts.Export != "" {
		// uuid has no role in the manifest's own identity; it just keeps
		// repeated exports of the same archive from clobbering each other.
		exportName := fmt.Sprintf("%s/archive-%d-%s.json", opts.Export, archiveID, uuid.New())
		if err := os.WriteFile(exportName, out, 0o644); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "exported manifest to %s\n", exportName)
	}

	fmt.Println(string(out))
	return nil
}

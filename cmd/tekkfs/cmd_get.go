// TekkFS - CLI get verb
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
	"fmt"
	"os"
	"strconv"

	"github.com/RuneTekk/TekkFS"
	"github.com/spf13/cobra"
)

var cmdGet = &cobra.Command{
	Use:   "get [flags] ARCHIVE_ID [ENTRY_NAME]",
	Short: "Read an archive, or one named entry within it",
	Long: `
The "get" command reads an archive blob out of the store by its numeric id.
With ENTRY_NAME given, the blob is parsed as a package and only that entry's
bytes are written out.

EXIT STATUS
===========

Exit status is 0 if the command was successful, and non-zero if there was
any error.
`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		archiveID, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			return fmt.Errorf("archive id: %w", err)
		}

		var entryName string
		if len(args) == 2 {
			entryName = args[1]
		}

		return runGet(getOptions.storeFlags, uint32(archiveID), entryName, getOptions.Out)
	},
}

type getOptionsType struct {
	storeFlags
	Out string
}

var getOptions getOptionsType

func init() {
	cmdRoot.AddCommand(cmdGet)
	addStoreFlags(cmdGet, &getOptions.storeFlags)
	cmdGet.Flags().StringVar(&getOptions.Out, "out", "", "write to this file instead of stdout")
}

func runGet(f storeFlags, archiveID uint32, entryName string, out string) error {
	store, err := f.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	blob, err := store.GetErr(archiveID)
	if err != nil {
		return fmt.Errorf("get archive %d: %w", archiveID, err)
	}

	data := blob
	if entryName != "" {
		pkg, err := tekkfs.ParsePackage(blob)
		if err != nil {
			return fmt.Errorf("parse archive %d: %w", archiveID, err)
		}

		data, err = pkg.GetErr(entryName)
		if err != nil {
			return fmt.Errorf("entry %q in archive %d: %w", entryName, archiveID, err)
		}
	}

	if out == "" {
		_, err = os.Stdout.Write(data)
		return err
	}

	return os.WriteFile(out, data, 0o644)
}

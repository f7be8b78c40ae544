// TekkFS - CLI put verb
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

	"github.com/spf13/cobra"
)

var cmdPut = &cobra.Command{
	Use:   "put [flags] ARCHIVE_ID FILE",
	Short: "Write FILE's bytes into the store as the given archive id",
	Long: `
The "put" command writes a single blob's raw bytes into the store under
ARCHIVE_ID, overwriting whatever was there before. It does not build a
package; use "pack" for that.

EXIT STATUS
===========

Exit status is 0 if the command was successful, and non-zero if there was
any error.
`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		archiveID, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			return fmt.Errorf("archive id: %w", err)
		}

		return runPut(putOptions, uint32(archiveID), args[1])
	},
}

var putOptions storeFlags

func init() {
	cmdRoot.AddCommand(cmdPut)
	addStoreFlags(cmdPut, &putOptions)
}

func runPut(f storeFlags, archiveID uint32, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	store, err := f.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.PutErr(data, archiveID, uint32(len(data))); err != nil {
		return fmt.Errorf("put archive %d: %w", archiveID, err)
	}

	return nil
}

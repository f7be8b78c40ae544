// TekkFS - CLI pack verb
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
	"path/filepath"
	"sort"
	"strconv"

	"github.com/RuneTekk/TekkFS"
	"github.com/spf13/cobra"
)

var cmdPack = &cobra.Command{
	Use:   "pack [flags] ARCHIVE_ID SOURCE_DIR",
	Short: "Build a package from every file in SOURCE_DIR and store it",
	Long: `
The "pack" command reads every regular file directly under SOURCE_DIR,
names each entry after its base filename, and bundles them into a single
package blob written to the store as ARCHIVE_ID.

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

		return runPack(packOptions, uint32(archiveID), args[1])
	},
}

type packOptionsType struct {
	storeFlags
	WholyCompressed  bool
	CompressionLevel int
}

var packOptions packOptionsType

func init() {
	cmdRoot.AddCommand(cmdPack)
	addStoreFlags(cmdPack, &packOptions.storeFlags)
	cmdPack.Flags().BoolVar(&packOptions.WholyCompressed, "wholly-compressed", false, "compress the whole footer as one stream instead of per entry")
	cmdPack.Flags().IntVar(&packOptions.CompressionLevel, "compression-level", 9, "BZip2 compression level (1-9)")
}

func runPack(opts packOptionsType, archiveID uint32, sourceDir string) error {
	dirEntries, err := os.ReadDir(sourceDir)
	if err != nil {
		return err
	}

	var names []string
	for _, de := range dirEntries {
		if de.Type().IsRegular() {
			names = append(names, de.Name())
		}
	}
	sort.Strings(names)

	if len(names) == 0 {
		return fmt.Errorf("no regular files found under %s", sourceDir)
	}

	bundle := tekkfs.NewBundle(len(names), opts.WholyCompressed, tekkfs.WithCompressionLevel(opts.CompressionLevel))

	for i, name := range names {
		data, err := os.ReadFile(filepath.Join(sourceDir, name))
		if err != nil {
			return err
		}

		if err := bundle.Put(i, name, data); err != nil {
			return fmt.Errorf("entry %q: %w", name, err)
		}
	}

	store, err := opts.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	s := tekkfs.NewStore(store)
	if err := s.PutPackage(archiveID, bundle); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "packed %d entries into archive %d\n", len(names), archiveID)
	return nil
}

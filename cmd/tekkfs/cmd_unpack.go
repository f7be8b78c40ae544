// TekkFS - CLI unpack verb
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
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/RuneTekk/TekkFS"
	"github.com/spf13/cobra"
)

var cmdUnpack = &cobra.Command{
	Use:   "unpack [flags] ARCHIVE_ID DEST_DIR",
	Short: "Decompress every entry of a package into DEST_DIR",
	Long: `
The "unpack" command reads ARCHIVE_ID, parses it as a package, and writes
every entry's decompressed bytes into DEST_DIR.

A package only stores each entry's name *hash* (SPEC_FULL.md section 3), so
recovering original filenames requires the original name list: pass it with
--names (one name per line, in the same order used by "pack"). Without
--names, entries are written as "entry-<index>.bin" instead.

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

		return runUnpack(unpackOptions, uint32(archiveID), args[1])
	},
}

type unpackOptionsType struct {
	storeFlags
	NamesFile string
}

var unpackOptions unpackOptionsType

func init() {
	cmdRoot.AddCommand(cmdUnpack)
	addStoreFlags(cmdUnpack, &unpackOptions.storeFlags)
	cmdUnpack.Flags().StringVar(&unpackOptions.NamesFile, "names", "", "file listing original entry names, one per line, in pack order")
}

func runUnpack(opts unpackOptionsType, archiveID uint32, destDir string) error {
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

	names, err := loadNames(opts.NamesFile, pkg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return err
	}

	for i, name := range names {
		data, err := pkg.EntryAt(i)
		if err != nil {
			return fmt.Errorf("entry %d (%s): %w", i, name, err)
		}

		if err := os.WriteFile(filepath.Join(destDir, name), data, 0o644); err != nil {
			return err
		}
	}

	fmt.Fprintf(os.Stderr, "unpacked %d entries from archive %d into %s\n", len(names), archiveID, destDir)
	return nil
}

// loadNames returns one name per entry in pkg, either read from namesFile or
// synthesized as "entry-<index>.bin" placeholders.
func loadNames(namesFile string, pkg *tekkfs.Package) ([]string, error) {
	entries := pkg.Entries()

	if namesFile == "" {
		names := make([]string, len(entries))
		for i := range names {
			names[i] = fmt.Sprintf("entry-%d.bin", i)
		}
		return names, nil
	}

	f, err := os.Open(namesFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var names []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		names = append(names, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if len(names) != len(entries) {
		return nil, fmt.Errorf("%s lists %d names, archive has %d entries", namesFile, len(names), len(entries))
	}

	return names, nil
}

// TekkFS - CLI shared store flags
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
	"errors"
	"os"

	"github.com/RuneTekk/TekkFS"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var errInvalidConfig = errors.New("tekkfs: invalid store configuration")

// storeFlags bundles the flags every verb needs to locate and open a
// BlockStore; mirrors backupOptions/initOptions in skyline93-rest's cmd tree.
type storeFlags struct {
	DataDir       string
	MainFile      string
	IndexFile     string
	IndexID       uint8
	PerCallReads  bool
}

func addStoreFlags(cmd *cobra.Command, f *storeFlags) {
	flags := cmd.Flags()
	flags.StringVar(&f.DataDir, "data-dir", ".", "directory holding the store's main/index files")
	flags.StringVar(&f.MainFile, "main-file", "main.dat", "main (block) file name, relative to --data-dir")
	flags.StringVar(&f.IndexFile, "index-file", "main.idx", "index file name, relative to --data-dir")
	flags.Uint8Var(&f.IndexID, "index-id", 0, "index id stamped into block headers")
	flags.BoolVar(&f.PerCallReads, "concurrent-reads", false, "allocate a fresh scratch buffer per Get instead of sharing one under lock")
}

// openStore opens the configured store read-write, creating the main and
// index files if they don't already exist.
func (f storeFlags) openStore() (*tekkfs.BlockStore, error) {
	v := viper.New()
	v.Set("tekkfs.data_dir", f.DataDir)
	v.Set("tekkfs.main_file", f.MainFile)
	v.Set("tekkfs.index_file", f.IndexFile)
	v.Set("tekkfs.index_id", f.IndexID)

	cfg, errs := tekkfs.LoadConfig(v)
	if errs > 0 {
		return nil, errInvalidConfig
	}
	if errs := tekkfs.ValidateConfiguration(cfg); errs > 0 {
		return nil, errInvalidConfig
	}

	mainFile, err := os.OpenFile(cfg.MainPath(), os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, err
	}

	indexFile, err := os.OpenFile(cfg.IndexPath(), os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		mainFile.Close()
		return nil, err
	}

	var opts []tekkfs.Option
	if f.PerCallReads {
		opts = append(opts, tekkfs.WithPerCallScratch())
	}

	store := tekkfs.NewBlockStore(cfg.IndexID, tekkfs.NewOSFileHandle(mainFile), tekkfs.NewOSFileHandle(indexFile), opts...)

	return store, nil
}

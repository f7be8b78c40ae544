// TekkFS - Configuration
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

// Configurable options for tekkfs go here. Everything else (block layout,
// package wire format) is fixed by the spec and not configurable.
//
// Grounded on the teacher's config.go: same ConfigureVariables/
// ValidateConfiguration split, same viper-backed field-by-field parsing
// style, generalized from the Haystack log-store's options to a
// BlockStore/PackageCodec pair's options. The AES keystore and
// user/group ownership checks are dropped entirely -- they only exist in
// the teacher to support the encrypted-catalogue feature this module's
// spec explicitly excludes (see DESIGN.md).

package tekkfs

import (
	"fmt"
	"log"
	"os"

	"github.com/imdario/mergo"
	"github.com/spf13/viper"
)

const (
	compressionLevelLower = 1 // dsnet/compress/bzip2.BestSpeed
	compressionLevelUpper = 9 // dsnet/compress/bzip2.BestCompression
)

// Config bundles the options a Store deployment needs beyond the raw
// BlockStore/Bundle constructor arguments: where the two backing files
// live, which index_id this store stamps into block headers, and what a
// freshly created package should default to.
type Config struct {
	DataDir       string
	MainFileName  string
	IndexFileName string
	IndexID       uint8

	CompressionLevel int
	WholyCompressed  bool
}

// DefaultConfig returns the baseline a Config is merged onto.
func DefaultConfig() Config {
	return Config{
		DataDir:          ".",
		MainFileName:     "main.dat",
		IndexFileName:    "main.idx",
		IndexID:          0,
		CompressionLevel: defaultCompressionLevel,
		WholyCompressed:  false,
	}
}

// LoadConfig reads overrides from v (a "tekkfs.*" section) and merges them
// onto DefaultConfig using mergo, the way a viper-backed Go service
// typically layers config over defaults. Parsing errors are accumulated
// and returned as a count, matching the teacher's ConfigureVariables
// convention of returning an error tally rather than failing fast on the
// first bad field.
func LoadConfig(v *viper.Viper) (Config, int) {
	cfg := DefaultConfig()

	var errs int
	var overrides Config

	errs += configParseDirname(&overrides.DataDir, v, "tekkfs.data_dir")
	errs += configParseString(&overrides.MainFileName, v, "tekkfs.main_file")
	errs += configParseString(&overrides.IndexFileName, v, "tekkfs.index_file")

	if v.IsSet("tekkfs.index_id") {
		id := v.GetUint("tekkfs.index_id")
		if id > 255 {
			log.Printf("tekkfs.index_id %d out of range (0-255)", id)
			errs++
		} else {
			overrides.IndexID = uint8(id)
		}
	}

	if v.IsSet("tekkfs.compression_level") {
		level := v.GetInt("tekkfs.compression_level")
		if level < compressionLevelLower || level > compressionLevelUpper {
			log.Printf("tekkfs.compression_level %d out of range (%d-%d)", level, compressionLevelLower, compressionLevelUpper)
			errs++
		} else {
			overrides.CompressionLevel = level
		}
	}

	overrides.WholyCompressed = v.GetBool("tekkfs.wholy_compressed")

	if err := mergo.Merge(&cfg, overrides, mergo.WithOverride); err != nil {
		log.Printf("merging tekkfs config overrides: %v", err)
		errs++
	}

	return cfg, errs
}

// ValidateConfiguration checks cfg against the filesystem: the data
// directory must exist and be a directory. It returns the number of
// problems found, zero meaning "ready to open files".
func ValidateConfiguration(cfg Config) int {
	var errs int

	st, err := os.Stat(cfg.DataDir)
	if err != nil {
		log.Printf("tekkfs data_dir: %v", err)
		return errs + 1
	}
	if !st.IsDir() {
		log.Printf("tekkfs data_dir %q is not a directory", cfg.DataDir)
		errs++
	}

	if cfg.CompressionLevel < compressionLevelLower || cfg.CompressionLevel > compressionLevelUpper {
		log.Printf("tekkfs compression_level %d out of range (%d-%d)", cfg.CompressionLevel, compressionLevelLower, compressionLevelUpper)
		errs++
	}

	return errs
}

// MainPath and IndexPath join DataDir with the configured file names.
func (c Config) MainPath() string  { return join(c.DataDir, c.MainFileName) }
func (c Config) IndexPath() string { return join(c.DataDir, c.IndexFileName) }

func join(dir, name string) string {
	if dir == "" || dir == "." {
		return name
	}

	return fmt.Sprintf("%s/%s", dir, name)
}

func configParseString(s *string, v *viper.Viper, key string) int {
	if str := v.GetString(key); str != "" {
		*s = str
		return 0
	}

	if v.IsSet(key) {
		log.Printf("configuration entry for '%s' is empty", key)
		return 1
	}

	return 0 // not set: keep default
}

func configParseDirname(v *string, vp *viper.Viper, key string) int {
	dirpath := vp.GetString(key)
	if dirpath == "" {
		if vp.IsSet(key) {
			log.Printf("configuration entry for '%s' is empty", key)
			return 1
		}
		return 0
	}

	st, err := os.Stat(dirpath)
	if err != nil {
		log.Printf("%s path: %s", key, err)
		return 1
	} else if !st.IsDir() {
		log.Printf("%s path '%s' is not a directory", key, dirpath)
		return 1
	}

	*v = dirpath
	return 0
}

// EOF

// TekkFS - Logging
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

package tekkfs

import (
	"log"
	"log/syslog"
	"os"
	"path/filepath"
)

func init() {
	// If stderr isn't a console or file (e.g. running under a supervisor
	// that closed it), fall back to syslog so log output isn't silently lost.
	if _, err := os.Stderr.Stat(); err != nil {
		syslogWriter, err := syslog.New(syslog.LOG_INFO, filepath.Base(os.Args[0]))
		if err != nil {
			log.Fatal(err) // can't print anywhere else, so exit with error.
		}

		log.SetFlags(0)
		log.SetOutput(syslogWriter)
	}
}

// EOF

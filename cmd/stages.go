/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/gnames/cnpjdb/internal/iocheck"
	"github.com/gnames/cnpjdb/internal/iodb"
	"github.com/gnames/cnpjdb/internal/iodownload"
	"github.com/gnames/cnpjdb/internal/ioextract"
	"github.com/gnames/cnpjdb/internal/iofs"
	"github.com/gnames/cnpjdb/internal/ioload"
	"github.com/gnames/cnpjdb/internal/ioschema"
	"github.com/gnames/cnpjdb/pkg/db"
	"github.com/gnames/gn"
)

// Stage names in the order they run.
const (
	stageDownload = "download"
	stageCreate   = "create"
	stageExtract  = "extract"
	stageLoad     = "load"
	stageCheck    = "check"
)

func stageNames() []string {
	return []string{
		stageDownload, stageCreate, stageExtract, stageLoad, stageCheck,
	}
}

func connect(ctx context.Context) (db.Operator, error) {
	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		return nil, err
	}
	gn.Info("Connected to database: <em>%s@%s:%d/%s</em>",
		cfg.Database.User, cfg.Database.Host,
		cfg.Database.Port, cfg.Database.Database)
	return op, nil
}

func runDownload(ctx context.Context) error {
	if err := iofs.EnsureDataDirs(cfg); err != nil {
		return err
	}
	_, err := iodownload.NewDownloader().Download(ctx, cfg)
	return err
}

// runCreate creates tables. With reset existing tables are dropped
// first: after confirmation, or immediately if force is true.
func runCreate(ctx context.Context, reset, force bool) error {
	op, err := connect(ctx)
	if err != nil {
		return err
	}
	defer op.Close()

	if reset {
		hasTables, err := op.HasTables(ctx)
		if err != nil {
			return err
		}
		if hasTables {
			if !force && !confirmDrop() {
				gn.Info("Aborted. No changes made.")
				return nil
			}
			gn.Info("Dropping all existing tables...")
			if err = op.DropAllTables(ctx); err != nil {
				return err
			}
			gn.Info("All tables dropped")
		}
	}

	gn.Info("Creating schema using GORM AutoMigrate...")
	return ioschema.NewManager(op).Create(ctx, cfg)
}

func confirmDrop() bool {
	gn.Warn("\nWarning: Database contains existing tables.")
	gn.Warn("Creating schema will drop ALL existing tables and data.")
	fmt.Print("\nDo you want to continue? (yes/no): ")

	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		gn.Warn("Failed to read user input")
		return false
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "yes" || response == "y"
}

func runExtract(ctx context.Context) error {
	if err := iofs.EnsureDataDirs(cfg); err != nil {
		return err
	}
	_, err := ioextract.NewExtractor().Extract(ctx, cfg)
	return err
}

func runLoad(ctx context.Context) error {
	if err := iofs.EnsureDataDirs(cfg); err != nil {
		return err
	}
	op, err := connect(ctx)
	if err != nil {
		return err
	}
	defer op.Close()

	_, err = ioload.NewLoader(op).Load(ctx, cfg)
	return err
}

func runCheck(ctx context.Context) error {
	op, err := connect(ctx)
	if err != nil {
		return err
	}
	defer op.Close()

	_, err = iocheck.NewChecker(op).Check(ctx, cfg)
	return err
}

// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/jakob-ledermann/database/cmd/flags"
	"github.com/jakob-ledermann/database/pkg/catalog"
	"github.com/jakob-ledermann/database/pkg/engine"
	"github.com/jakob-ledermann/database/pkg/wire"
)

func shellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Run an interactive SQL session against the catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				cat *catalog.Manager
				err error
			)
			if flags.InMemory() {
				cat = catalog.NewInMemory()
			} else {
				cat, err = catalog.Open(cmd.Context(), flags.DataDir())
				if err != nil {
					return err
				}
				defer cat.Close()
			}

			logger := engine.NewNoopLogger()
			if !flags.Quiet() {
				logger = engine.NewLogger()
			}

			sender := &consoleSender{}
			exec := engine.New(cat, sender, engine.WithLogger(logger))

			scanner := bufio.NewScanner(cmd.InOrStdin())
			fmt.Fprint(cmd.OutOrStdout(), "db> ")
			for scanner.Scan() {
				line := strings.TrimSpace(scanner.Text())
				switch {
				case line == "":
				case line == `\q`, line == "exit":
					return nil
				default:
					if err := exec.Execute(line); err != nil {
						return err
					}
					exec.Flush()
				}
				fmt.Fprint(cmd.OutOrStdout(), "db> ")
			}
			return scanner.Err()
		},
	}
}

// consoleSender renders protocol events for an interactive terminal.
type consoleSender struct{}

func (s *consoleSender) Send(msg wire.Message) error {
	switch m := msg.(type) {
	case *wire.QueryError:
		pterm.Error.Printfln("%s: %s", m.Code, m.Message)
	case wire.RecordsSelected:
		header := make([]string, len(m.Description))
		for i, field := range m.Description {
			header[i] = field.Name
		}
		data := append(pterm.TableData{header}, m.Rows...)
		pterm.DefaultTable.WithHasHeader().WithData(data).Render()
		pterm.Printfln("(%d rows)", len(m.Rows))
	case wire.RecordsInserted:
		pterm.Printfln("INSERT 0 %d", m.Count)
	case wire.RecordsUpdated:
		pterm.Printfln("UPDATE %d", m.Count)
	case wire.RecordsDeleted:
		pterm.Printfln("DELETE %d", m.Count)
	case wire.SchemaCreated:
		pterm.Println("CREATE SCHEMA")
	case wire.SchemaDropped:
		pterm.Println("DROP SCHEMA")
	case wire.TableCreated:
		pterm.Println("CREATE TABLE")
	case wire.TableDropped:
		pterm.Println("DROP TABLE")
	case wire.TransactionStarted:
		pterm.Println("BEGIN")
	case wire.VariableSet:
		pterm.Println("SET")
	case wire.QueryComplete:
		// Terminal framing; nothing to show interactively.
	}
	return nil
}

func (s *consoleSender) Flush() error {
	return nil
}

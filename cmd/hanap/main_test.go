package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

const sampleImport = `{"first_name":"Juan","middle_name":"Santos","last_name":"Dela Cruz","date_of_birth":"1931-02-14","date_of_death":"2001-07-03","plot_number":"A-12","cemetery_id":1,"cemetery_name":"Manila North Cemetery"}
{"first_name":"Maria","last_name":"Santos","date_of_death":"2015-01-20","plot_number":"B-4","cemetery_id":1,"cemetery_name":"Manila North Cemetery"}
{"first_name":"John","last_name":"Smith","date_of_death":"1999-04-02","plot_number":"C-7","cemetery_id":2,"cemetery_name":"Paco Park"}
{"plot_number":"Z-1"}
`

// run executes the CLI and returns what it wrote to stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &errOut
	err := app.Run(append([]string{"hanap", "--no-color"}, args...))
	return out.String(), err
}

func findFlag[T cli.Flag](t *testing.T, cmd *cli.Command, name string) T {
	t.Helper()
	for _, flag := range cmd.Flags {
		if f, ok := flag.(T); ok && flag.Names()[0] == name {
			return f
		}
	}
	require.FailNow(t, "flag not found", name)
	var zero T
	return zero
}

func TestReembedCommandFlags(t *testing.T) {
	cmd := newApp().Command("reembed")
	require.NotNil(t, cmd)

	t.Run("embedding flags default to the config file", func(t *testing.T) {
		assert.Empty(t, findFlag[*cli.StringFlag](t, cmd, "embedding-host").Value)
		assert.Empty(t, findFlag[*cli.StringFlag](t, cmd, "embedding-model").Value)
		assert.Empty(t, findFlag[*cli.StringFlag](t, cmd, "embedding-model").EnvVars)
	})

	t.Run("batch-size has default value of 100", func(t *testing.T) {
		assert.Equal(t, 100, findFlag[*cli.IntFlag](t, cmd, "batch-size").Value)
	})

	t.Run("report-interval has default value of 100", func(t *testing.T) {
		assert.Equal(t, 100, findFlag[*cli.IntFlag](t, cmd, "report-interval").Value)
	})

	t.Run("max-retries has default value of 3", func(t *testing.T) {
		assert.Equal(t, 3, findFlag[*cli.IntFlag](t, cmd, "max-retries").Value)
	})
}

func TestReembedCommandValidation(t *testing.T) {
	db := t.TempDir()

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "batch size", args: []string{"--batch-size", "0"}, want: "batch-size"},
		{name: "report interval", args: []string{"--report-interval", "0"}, want: "report-interval"},
		{name: "max retries", args: []string{"--max-retries", "0"}, want: "max-retries"},
		{name: "empty model", args: []string{"--embedding-model", ""}, want: "invalid AI configuration"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"--db", db, "reembed"}, tt.args...)
			_, err := run(t, args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestInterpretCommand(t *testing.T) {
	out, err := run(t, "interpret", "Hanap", "si", "Juan", "dela", "Cruz")
	require.NoError(t, err)
	assert.Contains(t, out, `"firstName": "Juan"`)
	assert.Contains(t, out, `"intentType": "find_person"`)

	_, err = run(t, "interpret")
	assert.ErrorIs(t, err, errQueryRequired)
}

func TestImportAndSearch(t *testing.T) {
	db := filepath.Join(t.TempDir(), "burials_db")
	input := filepath.Join(t.TempDir(), "burials.jsonl")
	require.NoError(t, os.WriteFile(input, []byte(sampleImport), 0644))

	out, err := run(t, "--db", db, "import", input)
	require.NoError(t, err)
	assert.Contains(t, out, "Added 3 records")
	assert.Contains(t, out, "Rejected record 4")

	t.Run("import is idempotent", func(t *testing.T) {
		out, err := run(t, "--db", db, "import", input)
		require.NoError(t, err)
		assert.Contains(t, out, "Added 0 records")
		assert.Contains(t, out, "Skipped 3 duplicate records")
	})

	t.Run("search", func(t *testing.T) {
		out, err := run(t, "--db", db, "search", "Maria", "Santos")
		require.NoError(t, err)
		assert.Contains(t, out, "Interpreted as find_person")
		assert.Contains(t, out, "Maria Santos")
		assert.Contains(t, out, "B-4")
	})

	t.Run("search as json", func(t *testing.T) {
		out, err := run(t, "--db", db, "search", "--json", "2001")
		require.NoError(t, err)
		assert.Contains(t, out, `"yearOfDeath": 2001`)
		assert.Contains(t, out, `"page_size": 20`)
	})

	t.Run("no results suggests", func(t *testing.T) {
		out, err := run(t, "--db", db, "search", "Jihn", "Smath")
		require.NoError(t, err)
		assert.Contains(t, out, "No burials found.")
		assert.Contains(t, out, "Did you mean: John Smith")
	})

	t.Run("suggest", func(t *testing.T) {
		out, err := run(t, "--db", db, "suggest", "Marai", "Santos")
		require.NoError(t, err)
		assert.Contains(t, out, "Maria Santos")
	})

	t.Run("autocomplete", func(t *testing.T) {
		out, err := run(t, "--db", db, "autocomplete", "--cemetery", "1", "ju")
		require.NoError(t, err)
		assert.Equal(t, "Juan Santos Dela Cruz\n", out)
	})

	t.Run("cemeteries", func(t *testing.T) {
		out, err := run(t, "--db", db, "cemeteries")
		require.NoError(t, err)
		assert.Contains(t, out, "Manila North Cemetery")
		assert.Contains(t, out, "Paco Park")
	})
}

func TestSetupLogger(t *testing.T) {
	newLoggerApp := func() *cli.App {
		return &cli.App{
			Name: "test",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "log-level", Value: "info"},
				&cli.BoolFlag{Name: "no-color"},
			},
			Before: setupLogger,
			Action: func(c *cli.Context) error {
				return nil
			},
		}
	}

	t.Run("valid log levels", func(t *testing.T) {
		for _, level := range []string{"debug", "info", "warn", "error", "DEBUG", "WaRn"} {
			t.Run(level, func(t *testing.T) {
				require.NoError(t, newLoggerApp().Run([]string{"test", "--log-level", level}))
			})
		}
	})

	t.Run("invalid log level returns error", func(t *testing.T) {
		err := newLoggerApp().Run([]string{"test", "--log-level", "invalid"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hanap.yaml")
	db := filepath.Join(t.TempDir(), "from_config")
	require.NoError(t, os.WriteFile(path, []byte("database: "+db+"\npage_size: 5\n"), 0644))

	out, err := run(t, "--config", path, "cemeteries")
	require.NoError(t, err)
	assert.Contains(t, out, "No cemeteries.")
	assert.DirExists(t, db)

	_, err = run(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "cemeteries")
	assert.ErrorContains(t, err, "error reading config file")
}

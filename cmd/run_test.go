package cmd

import (
	"testing"

	"github.com/gnames/cnpjdb/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectStages(t *testing.T) {
	tests := []struct {
		msg   string
		only  string
		res   []string
		isErr bool
	}{
		{
			msg: "all",
			res: []string{"download", "create", "extract", "load", "check"},
		},
		{msg: "one", only: "extract", res: []string{"extract"}},
		{msg: "case", only: " LOAD ", res: []string{"load"}},
		{msg: "unknown", only: "optimize", isErr: true},
	}

	for _, v := range tests {
		res, err := selectStages(v.only)
		if v.isErr {
			assert.Error(t, err, v.msg)
			continue
		}
		require.NoError(t, err, v.msg)
		assert.Equal(t, v.res, res, v.msg)
	}
}

func TestPipelineFlags(t *testing.T) {
	tests := []struct {
		msg  string
		args []string
		fn   func(*config.Config)
	}{
		{
			msg:  "no flags keep config",
			args: nil,
			fn: func(c *config.Config) {
				assert.Equal(t, config.ModeFull, c.Pipeline.Mode)
				assert.Equal(t, 10, c.Pipeline.SampleRows)
				assert.False(t, c.Pipeline.SampleForce)
			},
		},
		{
			msg:  "flags override config",
			args: []string{"--mode", "sample", "-n", "500", "-k", "2", "-f"},
			fn: func(c *config.Config) {
				assert.Equal(t, config.ModeSample, c.Pipeline.Mode)
				assert.Equal(t, 500, c.Pipeline.SampleRows)
				assert.Equal(t, 2, c.Pipeline.SampleFilesPerType)
				assert.True(t, c.Pipeline.SampleForce)
			},
		},
	}

	for _, v := range tests {
		var pf pipelineFlags
		cmd := getRunCmd()
		cmd.ResetFlags()
		addPipelineFlags(cmd, &pf)
		require.NoError(t, cmd.ParseFlags(v.args), v.msg)

		c := config.New()
		c.Update([]config.Option{
			config.OptPipelineMode(config.ModeFull),
			config.OptPipelineSampleRows(10),
		})
		c.Update(pf.options(cmd))
		v.fn(c)
	}
}

func TestRunCmd_DryRun(t *testing.T) {
	cfg = config.New()
	cfg.Update([]config.Option{config.OptDataRoot(t.TempDir())})

	cmd := getRunCmd()
	cmd.SetArgs([]string{"--dry-run", "--only", "extract", "--mode", "full"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, config.ModeFull, cfg.Pipeline.Mode)

	cmd = getRunCmd()
	cmd.SetArgs([]string{"--dry-run", "--only", "vacuum"})
	assert.Error(t, cmd.Execute())
}

package cmd

import (
	"bytes"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// ListDevices probes the wgpu adapter for each power profile and reports
// whether a compute capable device can be created on this machine.
func ListDevices(ctx *cli.Context) error {
	setupLogging(ctx)

	profiles := []struct {
		name string
		opts wgpu.RequestAdapterOptions
	}{
		{"default", wgpu.RequestAdapterOptions{}},
		{"low-power", wgpu.RequestAdapterOptions{PowerPreference: wgpu.PowerPreferenceLowPower}},
		{"high-performance", wgpu.RequestAdapterOptions{PowerPreference: wgpu.PowerPreferenceHighPerformance}},
		{"fallback", wgpu.RequestAdapterOptions{ForceFallbackAdapter: true}},
	}

	instance := wgpu.CreateInstance(nil)

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Profile", "Adapter", "Device"})

	for _, p := range profiles {
		adapterCol, deviceCol := "ok", "ok"

		adapter, err := instance.RequestAdapter(&p.opts)
		if err != nil {
			adapterCol, deviceCol = err.Error(), "-"
		} else if _, err := adapter.RequestDevice(nil); err != nil {
			deviceCol = err.Error()
		}

		table.Append([]string{p.name, adapterCol, deviceCol})
	}

	table.Render()
	logger.Noticef("wgpu adapter probe\n%s", buf.String())
	return nil
}

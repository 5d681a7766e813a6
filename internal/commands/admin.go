package commands

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"runtime/metrics"

	"github.com/hypergonial/hikari-arc-sub000/internal/core/command"
	"github.com/hypergonial/hikari-arc-sub000/internal/core/hook"
)

func (s *Set) admin() (*command.Plugin, error) {
	plugin, err := command.NewPlugin("admin",
		command.WithHooks(hook.OwnerOnly()),
		command.WithAutodefer(command.AutodeferOff),
		command.WithErrorHandler(s.handleError),
	)
	if err != nil {
		return nil, err
	}

	ping, err := command.NewSlashCommand("admin_ping", "Check that the bot is alive, owners only", adminPing)
	if err != nil {
		return nil, err
	}

	dbg, err := command.NewSlashCommand("debug", "Show runtime statistics, owners only", debugInfo)
	if err != nil {
		return nil, err
	}

	for _, cmd := range []command.TopLevelCommand{ping, dbg} {
		if err := plugin.Include(cmd); err != nil {
			return nil, err
		}
	}

	return plugin, nil
}

func adminPing(ctx *command.Context) error {
	latency := ctx.Client().Clock().Now().Sub(ctx.Interaction().CreatedAt)
	return respondEphemeral(ctx, fmt.Sprintf("Pong! Hello, owner. Interaction latency: %dms", latency.Milliseconds()))
}

const kb = 1024
const debugTemplate = "```\nallocated mem: %d KB\ngoroutines running: %d\nheap: %d KB\nstack: %d KB\n" +
	"compiled with %s for %s-%s\ninvocation: %s\n```"
const metricCount = 3

func debugInfo(ctx *command.Context) error {
	data := make([]metrics.Sample, metricCount)
	data[0] = metrics.Sample{Name: "/memory/classes/heap/objects:bytes"}
	data[1] = metrics.Sample{Name: "/memory/classes/heap/stacks:bytes"}
	data[2] = metrics.Sample{Name: "/memory/classes/total:bytes"}

	metrics.Read(data)

	for _, sample := range data {
		ctx.Logger().Debug().Str("name", sample.Name).Msgf("%d", sample.Value.Uint64())
	}

	var goos, goarch string
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			switch setting.Key {
			case "GOOS":
				goos = setting.Value
			case "GOARCH":
				goarch = setting.Value
			}
		}
	}

	return respondEphemeral(ctx, fmt.Sprintf(
		debugTemplate,
		data[2].Value.Uint64()/kb,
		runtime.NumGoroutine(),
		data[0].Value.Uint64()/kb,
		data[1].Value.Uint64()/kb,
		runtime.Version(), goos, goarch,
		ctx.InvocationID(),
	))
}

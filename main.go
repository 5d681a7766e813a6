package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hypergonial/hikari-arc-sub000/internal/adapters/discord"
	"github.com/hypergonial/hikari-arc-sub000/internal/adapters/file"
	"github.com/hypergonial/hikari-arc-sub000/internal/adapters/generator"
	"github.com/hypergonial/hikari-arc-sub000/internal/adapters/telegram"
	"github.com/hypergonial/hikari-arc-sub000/internal/commands"
	"github.com/hypergonial/hikari-arc-sub000/internal/config"
	"github.com/hypergonial/hikari-arc-sub000/internal/core/command"
	"github.com/hypergonial/hikari-arc-sub000/internal/core/domain"
	"github.com/hypergonial/hikari-arc-sub000/internal/core/hook"
	"github.com/hypergonial/hikari-arc-sub000/internal/core/port"
	"github.com/hypergonial/hikari-arc-sub000/internal/core/service"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("exiting")
	}
}

func newRootCommand() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "hikari-arc",
		Short:         "Slash command bot for Discord and Telegram",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return config.Load(configPath)
		},
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to the TOML config file (default ./config.toml)")

	root.AddCommand(&cobra.Command{
		Use:   "run",
		Short: "Connect to every configured platform and serve commands",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			return run(ctx)
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "commands",
		Short: "Print the command tree as it is registered with Discord",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printCommands(cmd.Context())
		},
	})

	return root
}

func run(ctx context.Context) error {
	log.Info().Msg("starting hikari-arc...")

	deps, err := newDeps(ctx)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	started := 0

	if token := viper.GetString("discord.token"); token != "" {
		bot, err := newDiscordBot(token, deps)
		if err != nil {
			return err
		}

		g.Go(func() error { return bot.Run(ctx) })
		started++
	}

	if token := viper.GetString("telegram.bot_token"); token != "" {
		transport, err := newTelegramTransport(token, deps)
		if err != nil {
			return err
		}

		g.Go(func() error { return transport.Run(ctx) })
		started++
	}

	if started == 0 {
		return errors.New("neither discord.token nor telegram.bot_token is configured")
	}

	return g.Wait()
}

func newDeps(ctx context.Context) (commands.Deps, error) {
	deps := commands.Deps{
		Attachments: file.NewDownloader(viper.GetInt("ask.max_attachment_size")),
	}

	apiKey := viper.GetString("openrouter.api_key")
	if apiKey == "" {
		return deps, nil
	}

	models, err := service.NewModelSelectorFromConfig()
	if err != nil {
		return deps, err
	}

	deps.Generator = generator.NewOpenRouter(apiKey, viper.GetString("chat.system_prompt"))
	deps.Usage = service.NewUsageTracker(ctx)
	deps.Models = models

	return deps, nil
}

func newDiscordBot(token string, deps commands.Deps) (*discord.Bot, error) {
	session, err := discord.NewSession(token)
	if err != nil {
		return nil, err
	}

	owners, err := snowflakes(viper.GetStringSlice("bot.owner_ids"))
	if err != nil {
		return nil, fmt.Errorf("invalid bot.owner_ids: %w", err)
	}

	guilds, err := snowflakes(viper.GetStringSlice("discord.guild_ids"))
	if err != nil {
		return nil, fmt.Errorf("invalid discord.guild_ids: %w", err)
	}

	opts := []command.Option{command.WithOwnerIDs(owners...)}
	if len(guilds) > 0 {
		opts = append(opts, command.WithGuilds(guilds...))
	}

	client, err := newClient("discord", discord.NewResponder(session), deps, opts...)
	if err != nil {
		return nil, err
	}

	return discord.NewBot(session, client), nil
}

func newTelegramTransport(token string, deps commands.Deps) (*telegram.Transport, error) {
	b, err := telegram.NewBot(token)
	if err != nil {
		return nil, err
	}

	allowlist, err := hook.NewChannelAllowlistFromConfig()
	if err != nil {
		return nil, err
	}

	var ownerIDs []int64
	if err := viper.UnmarshalKey("telegram.owner_ids", &ownerIDs); err != nil {
		return nil, fmt.Errorf("invalid telegram.owner_ids: %w", err)
	}

	owners := make([]domain.Snowflake, 0, len(ownerIDs))
	for _, id := range ownerIDs {
		owners = append(owners, domain.Snowflake(uint64(id)))
	}

	client, err := newClient("telegram", telegram.NewResponder(b), deps,
		command.WithOwnerIDs(owners...),
		command.WithHooks(allowlist),
	)
	if err != nil {
		return nil, err
	}

	return telegram.NewTransport(b, client), nil
}

// newClient builds a client with the settings shared by every platform and
// registers the command set on it.
func newClient(platform string, responder port.InteractionResponder, deps commands.Deps,
	opts ...command.Option) (*command.Client, error) {
	mode, err := command.ParseAutodeferMode(viper.GetString("bot.autodefer"))
	if err != nil {
		return nil, fmt.Errorf("invalid bot.autodefer: %w", err)
	}

	opts = append(opts, command.WithAutodefer(mode))

	if ttl := viper.GetDuration("bot.deduplicate_ttl"); ttl > 0 {
		opts = append(opts, command.WithDeduplication(ttl))
	}

	if limit := viper.GetInt("bot.max_concurrency"); limit > 0 {
		opts = append(opts, command.WithConcurrencyLimiter(hook.GlobalConcurrency(limit)))
	}

	client, err := command.NewClient(responder, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed initializing %s client: %w", platform, err)
	}

	if _, err := commands.Register(client, deps); err != nil {
		return nil, fmt.Errorf("failed registering %s commands: %w", platform, err)
	}

	l := log.With().Str("platform", platform).Logger()

	client.AddStartupHook(func(_ context.Context, c *command.Client) error {
		l.Info().
			Int("commands", len(c.WalkCommands(domain.CommandSlash, true))).
			Int("owners", len(c.OwnerIDs())).
			Msg("command client started")
		return nil
	})
	client.AddShutdownHook(func(context.Context, *command.Client) error {
		l.Info().Msg("command client stopped")
		return nil
	})

	return client, nil
}

func printCommands(ctx context.Context) error {
	deps, err := newDeps(ctx)
	if err != nil {
		return err
	}

	session, err := discord.NewSession(viper.GetString("discord.token"))
	if err != nil {
		return err
	}

	client, err := newClient("discord", discord.NewResponder(session), deps)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	return enc.Encode(client.Definitions())
}

func snowflakes(values []string) ([]domain.Snowflake, error) {
	ids := make([]domain.Snowflake, 0, len(values))

	for _, v := range values {
		id, err := domain.ParseSnowflake(v)
		if err != nil {
			return nil, fmt.Errorf("'%s': %w", v, err)
		}

		ids = append(ids, id)
	}

	return ids, nil
}

/* main.go
 * The "main" method for running the prediction backend. Starts the HTTP server and the
 * periodic refresh scheduler, and optionally the Discord bot.
 * Usage: go run . -config="config.yaml" -bot="false"
 * Authors: Zachary Bower
 */

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"worldcup-predictions/api/agent"
	apiPkg "worldcup-predictions/api/api"
	"worldcup-predictions/api/shared"
	"worldcup-predictions/bot"
	"worldcup-predictions/config"
	"worldcup-predictions/scheduler"
	"worldcup-predictions/web"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using process environment")
	}

	// Flags
	configPtr := flag.String("config", "config.yaml", "Path to the yaml configuration file")
	botPtr := flag.String("bot", "false", "Run the Discord bot alongside the server: takes true or false as argument")
	seedPtr := flag.String("seed", "", "Seed the tournament from a JSON file of teams and matches, then exit")

	flag.Parse()

	withBot, err := convertStrToBool(*botPtr)
	if err != nil {
		log.Fatal("Invalid \"bot\" flag. Should be true or false")
	}

	cfg, err := config.Load(*configPtr)
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	if err := cfg.Validate(withBot); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	api, err := apiPkg.NewAPI(cfg.Database.Name, cfg.MongoURI, cfg.GeminiAPIKey, cfg.FootballAPIKey)
	if err != nil {
		log.Fatalf("failed to initialize API: %v", err)
	}
	api.StatsTTL = cfg.Pipeline.StatsTTL
	api.RecentFixtureCount = cfg.Pipeline.RecentFixtureCount
	if ag, ok := api.Predictor.(*agent.Agent); ok {
		ag.Model = cfg.Providers.GeminiModel
	}
	defer func() {
		if err := api.Store.GetClient().Disconnect(context.TODO()); err != nil {
			log.Println("error disconnecting from database:", err)
		}
	}()

	if *seedPtr != "" {
		if err := seedTournament(api, *seedPtr); err != nil {
			log.Fatalf("seeding failed: %v", err)
		}
		log.Println("tournament seeded")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sched := scheduler.NewScheduler(api)
	sched.UpdateInterval = cfg.Pipeline.UpdateInterval
	sched.RankingInterval = cfg.Pipeline.RankingInterval
	go sched.Run(ctx)

	if withBot {
		discordBot, err := bot.NewBot(cfg.DiscordToken, api)
		if err != nil {
			log.Fatalf("failed to initialize bot: %v", err)
		}
		go func() {
			if err := discordBot.Run(); err != nil {
				log.Println("bot stopped:", err)
			}
		}()
	}

	go func() {
		err := web.Start(web.Config{
			Addr:           cfg.Server.Addr,
			API:            api,
			AllowedOrigins: cfg.Server.AllowedOrigins,
		})
		if err != nil {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")
}

// seedFile is the JSON shape accepted by the -seed flag
type seedFile struct {
	Teams   []shared.Team  `json:"teams"`
	Matches []shared.Match `json:"matches"`
}

// Function used to load teams and the match schedule from a JSON file into the store
// Preconditions: Receives a pointer to the API and the path to a JSON seed file
// Postconditions: Upserts both collections, or returns an error describing what failed
func seedTournament(api *apiPkg.API, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read seed file: %w", err)
	}

	var seed seedFile
	if err := json.Unmarshal(data, &seed); err != nil {
		return fmt.Errorf("failed to parse seed file: %w", err)
	}
	if len(seed.Teams) == 0 || len(seed.Matches) == 0 {
		return fmt.Errorf("seed file must contain teams and matches")
	}

	if err := api.Store.UpsertTeams(seed.Teams); err != nil {
		return err
	}
	if err := api.Store.UpsertMatches(seed.Matches); err != nil {
		return err
	}
	log.Printf("seeded %d teams and %d matches", len(seed.Teams), len(seed.Matches))
	return nil
}

package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/marcsantiago/gocron"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel/metric/global"
	"google.golang.org/api/option"

	"github.com/tallybot/tallybot"
	"github.com/tallybot/tallybot/config"
	"github.com/tallybot/tallybot/schedule"
	"github.com/tallybot/tallybot/store"
	"github.com/tallybot/tallybot/store/datastoredb"
	"github.com/tallybot/tallybot/web"
)

const (
	appName = "tallybot"
)

func main() {
	configurationPath := flag.String("config", "", "The path to the configuration file")
	flag.Parse()

	v := config.NewViperWithDefaults()
	v.SetEnvPrefix(strings.ToUpper(appName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if *configurationPath != "" {
		v.SetConfigFile(*configurationPath)

		err := v.ReadInConfig()
		if err != nil {
			log.Fatalf("Error loading configuration file [%s]: %v", *configurationPath, err)
		}
	}

	v = config.LayerConfigWithDefaults(v)

	logger := tallybot.NewSLoggerFromConfig(v, log.New(os.Stdout, "", log.LstdFlags))

	storer, err := newStorer(v)
	if err != nil {
		logger.Fatalf("Error opening storage: %v", err)
	}
	defer storer.Close()

	timeLoc, err := config.GetTimeLocation(v)
	if err != nil {
		logger.Fatalf("Error loading time location: %v", err)
	}

	meter := global.Meter(appName)

	var teams tallybot.TeamStorer = tallybot.NewTeamStore(storer, logger)
	teams = tallybot.NewTeamStorerWithTelemetry(teams, appName, meter)

	gateway, err := tallybot.NewSlackGateway(v, teams, logger)
	if err != nil {
		logger.Fatalf("Error setting up slack gateway: %v", err)
	}

	userInfo, err := tallybot.NewCachingUserInfoFinder(v, gateway, logger)
	if err != nil {
		logger.Fatalf("Error setting up user info cache: %v", err)
	}
	userInfo = tallybot.NewUserInfoFinderWithTelemetry(userInfo, appName, meter)

	scorer := tallybot.NewScorer(teams, userInfo, gateway, logger)
	reporter := tallybot.NewReporter(teams, userInfo, logger)
	tasker := &tallybot.GoTasker{Logger: logger}
	handlers := tallybot.NewBotHandlers(teams, scorer, reporter, userInfo, gateway, tasker, logger)

	bot := tallybot.New(tallybot.OptionLogger(logger), tallybot.OptionMeter(meter))
	handlers.RegisterAll(bot)

	startMaintenance(v, teams, logger, timeLoc)

	server := web.NewServer(bot, tallybot.NewVerifier(v.GetString(config.SigningSecretKey)), teams, gateway, web.OAuthConfig{
		ClientID:     v.GetString(config.ClientIDKey),
		ClientSecret: v.GetString(config.ClientSecretKey),
		RedirectURI:  v.GetString(config.OAuthRedirectURIKey),
	}, logger)

	addr := fmt.Sprintf(":%d", v.GetInt(config.HTTPPortKey))
	logger.Printf("Listening on %s\n", addr)

	err = http.ListenAndServe(addr, server.Router())
	if err != nil {
		logger.Fatalf("Server failed: %v", err)
	}
}

// newStorer opens the storage backend named by the configuration
func newStorer(v *viper.Viper) (storer store.GlobalSiloStringStorer, err error) {
	switch backend := v.GetString(config.StorageBackendKey); backend {
	case "datastore":
		opts := []option.ClientOption{}
		if credentialsFile := v.GetString(config.GCloudCredentialsFileKey); credentialsFile != "" {
			opts = append(opts, option.WithCredentialsFile(credentialsFile))
		}

		return datastoredb.NewDatastoreDB(appName, v.GetString(config.GCloudProjectIDKey), opts...)

	case "leveldb":
		return store.NewLevelDB(appName, v.GetString(config.StoragePathKey))

	default:
		return nil, fmt.Errorf("Unknown storage backend [%s]", backend)
	}
}

// startMaintenance schedules the daily maintenance pass
func startMaintenance(v *viper.Viper, teams tallybot.TeamStorer, logger tallybot.SLogger, timeLoc *time.Location) {
	maintenance := tallybot.NewMaintenance(teams, logger, timeLoc)

	scheduler := gocron.NewScheduler()
	gocron.ChangeLoc(timeLoc)

	sd := schedule.Definition{Interval: 1, Unit: schedule.Days, AtTime: v.GetString(config.MaintenanceAtTimeKey)}
	job, err := schedule.NewJob(scheduler, sd)
	if err != nil {
		logger.Fatalf("Error scheduling maintenance [%s]: %v", sd.String(), err)
	}

	logger.Printf("Scheduling maintenance [%s]\n", sd.String())
	job.Do(maintenance.Run)

	go func() {
		<-scheduler.Start()
	}()
}

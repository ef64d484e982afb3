package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ManuelFernandezG/manny-map-sub000/api"
	"github.com/ManuelFernandezG/manny-map-sub000/cache"
	"github.com/ManuelFernandezG/manny-map-sub000/schema"
	"github.com/ManuelFernandezG/manny-map-sub000/store"
)

func initializeConfig(file string) {
	viper.SetDefault("server.address", ":8080")
	viper.SetDefault("mongo.conn", "mongodb://127.0.0.1:27017")
	viper.SetDefault("mongo.database", "mannymap")
	viper.SetDefault("redis.addr", "")
	viper.SetDefault("cache.trend_card_ttl", "60s")
	viper.SetDefault("trend.timezone", "America/New_York")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.trace", false)

	viper.SetEnvPrefix("mannymap")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if file != "" {
		viper.SetConfigFile(file)
		if err := viper.ReadInConfig(); err != nil {
			log.WithError(err).Fatal("read config file")
		}
	}
}

func initializeLog() {
	level, err := log.ParseLevel(viper.GetString("log.level"))
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
	log.SetOutput(os.Stdout)
}

func main() {
	var configFile string
	flag.StringVar(&configFile, "c", "", "config file path")
	flag.Parse()

	initializeConfig(configFile)
	initializeLog()

	connURI := viper.GetString("mongo.conn")
	database := viper.GetString("mongo.database")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(connURI))
	if err != nil {
		cancel()
		log.WithError(err).Fatal("connect mongo")
	}
	if err := client.Ping(ctx, nil); err != nil {
		cancel()
		log.WithError(err).Fatal("ping mongo")
	}
	cancel()

	if err := schema.NewMongoDBIndexer(connURI, database).IndexAll(); err != nil {
		log.WithError(err).Warn("create mongodb indexes")
	}

	var trendCache *cache.TrendCardCache
	if addr := viper.GetString("redis.addr"); addr != "" {
		rdb := goredis.NewClient(&goredis.Options{
			Addr:     addr,
			Password: viper.GetString("redis.password"),
		})
		trendCache = cache.NewTrendCardCache(rdb, viper.GetDuration("cache.trend_card_ttl"))
	}

	tonightZone, err := time.LoadLocation(viper.GetString("trend.timezone"))
	if err != nil {
		log.WithError(err).Fatal("load trend timezone")
	}

	mongoStore := store.NewMongoStore(client, database)
	server := api.NewServer(mongoStore, trendCache, tonightZone, viper.GetBool("log.trace"))

	go func() {
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
		<-sigs

		log.Info("shutting down")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("server shutdown")
		}
		if err := mongoStore.Close(shutdownCtx); err != nil {
			log.WithError(err).Error("mongo disconnect")
		}
	}()

	if err := server.Run(viper.GetString("server.address")); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Fatal("server stopped")
	}
}

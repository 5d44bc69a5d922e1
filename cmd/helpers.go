package cmd

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/sirupsen/logrus"

	"github.com/ziadkadry99/accessblock/internal/bionic"
	"github.com/ziadkadry99/accessblock/internal/config"
	"github.com/ziadkadry99/accessblock/internal/db"
	"github.com/ziadkadry99/accessblock/internal/logging"
	"github.com/ziadkadry99/accessblock/internal/prefs"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `accessblock init` to create a config file", err)
	}
	if verbose {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// configPath reports the config file in use, for messages.
func configPath() string {
	if cfgFile == "" {
		return config.DefaultConfigFile
	}
	return cfgFile
}

// newLogger builds the process logger from the log section.
func newLogger(cfg *config.Config) (*logrus.Entry, error) {
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	return logger, nil
}

// newTransformer creates the provider client, rate limited when the
// config asks for it.
func newTransformer(cfg *config.Config, logger *logrus.Entry) bionic.Transformer {
	var opts []bionic.ClientOption
	if cfg.Bionic.Host != "" {
		opts = append(opts, bionic.WithHost(cfg.Bionic.Host))
	}
	providerLog := logger.WithField("provider", "bionic")
	client := bionic.NewHTTPTransformer(cfg.Bionic.Endpoint, cfg.Bionic.APIKey, providerLog, opts...)
	return bionic.NewRateLimitedTransformer(client, cfg.Bionic.RequestsPerMinute, providerLog)
}

// newLabels maps configured texts onto the toggle labels, keeping the
// defaults for anything left blank.
func newLabels(cfg *config.Config) bionic.Labels {
	labels := bionic.DefaultLabels()
	if cfg.Labels.Activate != "" {
		labels.Activate = cfg.Labels.Activate
	}
	if cfg.Labels.Loading != "" {
		labels.Loading = cfg.Labels.Loading
	}
	if cfg.Labels.Deactivate != "" {
		labels.Deactivate = cfg.Labels.Deactivate
	}
	if cfg.Labels.Failure != "" {
		labels.Failure = cfg.Labels.Failure
	}
	return labels
}

// newCatalogue builds the site colour schemes.
func newCatalogue(cfg *config.Config) (prefs.Catalogue, error) {
	schemes := make([]prefs.Scheme, 0, len(cfg.Schemes))
	for _, s := range cfg.Schemes {
		schemes = append(schemes, prefs.Scheme{ID: s.ID, Foreground: s.Foreground, Background: s.Background})
	}
	cat, err := prefs.NewCatalogue(schemes)
	if err != nil {
		return prefs.Catalogue{}, fmt.Errorf("colour schemes: %w", err)
	}
	return cat, nil
}

// openRepository returns the preference store selected by database.driver.
// The SQLite database is always needed for instance schemes and history,
// so it is passed in either way.
func openRepository(ctx context.Context, cfg *config.Config, database *db.DB, logger *logrus.Entry) (prefs.Repository, error) {
	switch cfg.Database.Driver {
	case config.DriverDynamoDB:
		var loadOpts []func(*awsconfig.LoadOptions) error
		if cfg.Database.Region != "" {
			loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.Database.Region))
		}
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
		if err != nil {
			return nil, fmt.Errorf("loading AWS config: %w", err)
		}
		client := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
			if cfg.Database.Endpoint != "" {
				o.BaseEndpoint = aws.String(cfg.Database.Endpoint)
			}
		})
		return prefs.NewDynamoStore(logger.WithField("store", "dynamodb"), client, cfg.Database.Table), nil
	default:
		return prefs.NewStore(database), nil
	}
}

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/exvulsec/sendbot/notifier"
)

const (
	EnvPrefix = "SENDBOT"

	SlackNotifier = "slack"
	LarkNotifier  = "lark"
)

var Conf = Config{}

var (
	CfgPath string
	Env     string
)

type Config struct {
	NotifierType     string           `mapstructure:"notifier" yaml:"notifier"`
	Slack            map[string]any   `mapstructure:"slack" yaml:"slack"`
	Lark             LarkConfig       `mapstructure:"lark" yaml:"lark"`
	Log              LogConfig        `mapstructure:"log" yaml:"log"`
	HTTPClient       HTTPClientConfig `mapstructure:"httpclient" yaml:"httpclient"`
	HTTPServerConfig HTTPServerConfig `mapstructure:"httpserver" yaml:"httpserver"`
}

type LarkConfig struct {
	WebHook string `mapstructure:"webhook" yaml:"webhook"`
}

type LogConfig struct {
	Path  string `mapstructure:"path" yaml:"path"`
	Level string `mapstructure:"level" yaml:"level"`
}

type HTTPClientConfig struct {
	Timeout  time.Duration `mapstructure:"timeout" yaml:"timeout"`
	MaxConns int           `mapstructure:"max-conns" yaml:"max-conns"`
}

type HTTPServerConfig struct {
	Host    string   `mapstructure:"host" yaml:"host"`
	Port    int      `mapstructure:"port" yaml:"port"`
	APIKeys []string `mapstructure:"apikeys" yaml:"apikeys"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("notifier", SlackNotifier)
	v.SetDefault("log.level", logrus.InfoLevel.String())
	v.SetDefault("httpclient.timeout", 10*time.Second)
	v.SetDefault("httpclient.max-conns", 16)
	v.SetDefault("httpserver.host", "127.0.0.1")
	v.SetDefault("httpserver.port", 8088)
}

// Load reads config.<env>.yaml from cfgPath. Environment variables prefixed
// with SENDBOT_ override values from the file, e.g.
// SENDBOT_SLACK_INCOMINGHOOKTOKEN.
func Load(cfgPath, env string) (Config, error) {
	if len(cfgPath) < 1 {
		return Config{}, fmt.Errorf("failed to get config path %q", cfgPath)
	}
	if env == "" {
		env = "dev"
	}

	v := viper.New()
	setDefaults(v)
	v.SetConfigName("config." + env)
	v.SetConfigType("yaml")
	v.AddConfigPath(cfgPath)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("failed to read configuration file: %w", err)
	}

	var conf Config
	if err := v.Unmarshal(&conf); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal configuration file: %w", err)
	}
	return conf, nil
}

// SetupConfig loads the configuration into Conf.
func SetupConfig() error {
	conf, err := Load(CfgPath, Env)
	if err != nil {
		return err
	}
	Conf = conf
	logrus.Infof("read configuration file successfully")
	return nil
}

// SendBot builds the Slack SendBot from the slack section.
func (c Config) SendBot(opts ...notifier.Option) (*notifier.SendBot, error) {
	return notifier.NewSendBotFromOptions(c.Slack, opts...)
}

// Notifier builds the notifier selected by the notifier key.
func (c Config) Notifier(opts ...notifier.Option) (notifier.Notifier, error) {
	switch strings.ToLower(c.NotifierType) {
	case "", SlackNotifier:
		return c.SendBot(opts...)
	case LarkNotifier:
		return notifier.NewLarkNotifier(c.Lark.WebHook, opts...)
	default:
		return nil, fmt.Errorf("unsupported notifier %q", c.NotifierType)
	}
}

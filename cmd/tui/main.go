package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"number_generator/internal/service"
	"number_generator/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func main() {
	if err := loadConfig(); err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	m := tui.NewModel(service.NewRand(viper.GetUint64("generator.seed")), tui.Config{
		MaxCount:   viper.GetInt("generator.max_count"),
		AutoPeriod: viper.GetDuration("autogen.period"),
	})
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() error {
	// .env is optional; real environment variables win over it
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	viper.SetDefault("autogen.period", service.DefaultAutoPeriod)
	viper.SetDefault("generator.max_count", 10_000)
	viper.SetDefault("generator.seed", 0)
	viper.SetEnvPrefix("RNG")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	viper.AddConfigPath("configs")
	viper.SetConfigName("config")
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
	}
	return nil
}

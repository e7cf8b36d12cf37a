package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "workforce-bot",
	Short: "Workforce management assistant for retail store chains",
	Long: `Workforce-bot is a dialogue assistant for retail chains:
- employee registration and barcode-based sign-in
- role-driven admin rights and store attachments
- store directory with sequential numbering
- monthly work schedules and substitution shifts`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./workforce-bot.yaml)")

	rootCmd.PersistentFlags().String("db-host", "postgres", "PostgreSQL host")
	rootCmd.PersistentFlags().Int("db-port", 5432, "PostgreSQL port")
	rootCmd.PersistentFlags().String("db-user", "workforce", "PostgreSQL user")
	rootCmd.PersistentFlags().String("db-password", "workforce", "PostgreSQL password")
	rootCmd.PersistentFlags().String("db-name", "workforce_db", "PostgreSQL database name")
	rootCmd.PersistentFlags().String("db-sslmode", "disable", "PostgreSQL SSL mode")

	rootCmd.PersistentFlags().String("admin-secret-code", "", "secret code that grants admin rights")
	rootCmd.PersistentFlags().Int("session-ttl-min", 0, "idle session TTL in minutes (0 = never expires)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")

	viper.BindPFlag("db.host", rootCmd.PersistentFlags().Lookup("db-host"))
	viper.BindPFlag("db.port", rootCmd.PersistentFlags().Lookup("db-port"))
	viper.BindPFlag("db.user", rootCmd.PersistentFlags().Lookup("db-user"))
	viper.BindPFlag("db.password", rootCmd.PersistentFlags().Lookup("db-password"))
	viper.BindPFlag("db.name", rootCmd.PersistentFlags().Lookup("db-name"))
	viper.BindPFlag("db.sslmode", rootCmd.PersistentFlags().Lookup("db-sslmode"))
	viper.BindPFlag("bot.admin_secret_code", rootCmd.PersistentFlags().Lookup("admin-secret-code"))
	viper.BindPFlag("bot.session_ttl_min", rootCmd.PersistentFlags().Lookup("session-ttl-min"))
	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

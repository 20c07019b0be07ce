package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/mhartmann/librarian/config"
	"github.com/mhartmann/librarian/logger"
	"github.com/mhartmann/librarian/storage"
	"github.com/mhartmann/librarian/web"
	"github.com/mhartmann/librarian/web/service"

	"github.com/joho/godotenv"
	"github.com/op/go-logging"
	"github.com/spf13/cobra"
)

func runWebServer() {
	log.Printf("%v %v", config.GetName(), config.GetVersion())

	switch config.GetLogLevel() {
	case config.Debug:
		logger.InitLogger(logging.DEBUG)
	case config.Info:
		logger.InitLogger(logging.INFO)
	case config.Notice:
		logger.InitLogger(logging.NOTICE)
	case config.Warn:
		logger.InitLogger(logging.WARNING)
	case config.Error:
		logger.InitLogger(logging.ERROR)
	default:
		log.Fatal("unknown log level:", config.GetLogLevel())
	}
	defer logger.CloseLogger()

	server := web.NewServer()
	if err := server.Start(); err != nil {
		log.Println(err)
		return
	}

	sigCh := make(chan os.Signal, 1)
	// Trap shutdown signals
	signal.Notify(sigCh, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGINT)
	for {
		sig := <-sigCh

		switch sig {
		case syscall.SIGHUP:
			logger.Info("received SIGHUP, restarting web server")
			if err := server.Stop(); err != nil {
				logger.Warning("stop server err:", err)
			}
			server = web.NewServer()
			if err := server.Start(); err != nil {
				log.Println(err)
				return
			}
		default:
			if err := server.Stop(); err != nil {
				logger.Warning("stop server err:", err)
			}
			return
		}
	}
}

// showSetting prints the effective configuration and the registered user
// count, for a quick health check from the shell.
func showSetting() {
	fmt.Println("app name:", config.GetAppName())
	fmt.Println("version:", config.GetVersion())
	fmt.Println("listen:", config.GetListen())
	fmt.Println("port:", config.GetPort())
	fmt.Println("data folder:", config.GetDataFolder())

	store := storage.NewStore(config.GetDataFolder())
	userService := service.NewUserService(store)
	if err := userService.EnsureSeeded(); err != nil {
		fmt.Println("open users table failed:", err)
		return
	}
	users, err := userService.GetAll()
	if err != nil {
		fmt.Println("load users failed:", err)
		return
	}
	fmt.Println("registered users:", len(users))
}

func main() {
	_ = godotenv.Load()
	if err := config.LoadFile("librarian.toml"); err != nil {
		log.Fatal("load config file:", err)
	}

	rootCmd := &cobra.Command{
		Use:   "librarian",
		Short: "Library catalog and account management web application",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Start the web server",
		Run: func(cmd *cobra.Command, args []string) {
			runWebServer()
		},
	}

	settingCmd := &cobra.Command{
		Use:   "setting",
		Short: "Show the effective settings",
		Run: func(cmd *cobra.Command, args []string) {
			showSetting()
		},
	}

	rootCmd.AddCommand(runCmd, settingCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

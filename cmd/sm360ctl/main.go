// Command sm360ctl drives a SAMA SM360 LCD panel over its USB serial port:
// polling status, setting brightness, and switching themes.
//
// Usage:
//
//	sm360ctl [flags] <command> [args]
//
// Commands:
//
//	ports                  list serial ports on this host
//	status                 print the device status tuple
//	brightness <0-255>     set the backlight level
//	play <file.mp4>        play a video already present on the device
//	stop                   stop playback
//	theme <name>           switch to a theme from the local library
//	raw <op> [sub] [hex]   send an arbitrary command frame
//
// Configuration is read from sm360ctl.yaml (working directory or
// ~/.config/sm360ctl) and SM360_* environment variables; flags win.
package main

import (
	"context"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/openlcd/go-sm360/device"
	"github.com/openlcd/go-sm360/theme"
)

func main() {
	flags := flag.NewFlagSet("sm360ctl", flag.ExitOnError)
	port := flags.String("port", "", "serial port of the panel (e.g. /dev/ttyACM0, COM7)")
	library := flags.String("library", "", "theme library directory")
	resolution := flags.String("resolution", "480480r", "panel resolution folder")
	logLevel := flags.String("log-level", "info", "log level: debug, info, warn, error")
	logFile := flags.String("log-file", "", "also log to this file, with rotation")
	timeout := flags.Duration("timeout", 30*time.Second, "overall operation deadline")
	flags.Usage = func() {
		fmt.Fprintf(flags.Output(), "Usage: sm360ctl [flags] <command> [args]\n\n")
		fmt.Fprintf(flags.Output(), "Commands: ports, status, brightness, play, stop, theme, raw\n\nFlags:\n")
		flags.PrintDefaults()
	}
	_ = flags.Parse(os.Args[1:])

	cfg := loadConfig(flags, map[string]string{
		"port":       *port,
		"library":    *library,
		"resolution": *resolution,
		"log.level":  *logLevel,
		"log.file":   *logFile,
	})

	logger, err := buildLogger(cfg.GetString("log.level"), cfg.GetString("log.file"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "sm360ctl: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if flags.NArg() == 0 {
		flags.Usage()
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := run(ctx, cfg, logger, flags.Arg(0), flags.Args()[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "sm360ctl: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig merges the config file, SM360_* environment variables, and any
// flag set explicitly on the command line.
func loadConfig(flags *flag.FlagSet, flagValues map[string]string) *viper.Viper {
	v := viper.New()
	v.SetConfigName("sm360ctl")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home + "/.config/sm360ctl")
	}
	v.SetEnvPrefix("sm360")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("resolution", "480480r")
	v.SetDefault("log.level", "info")
	v.SetDefault("response_timeout", 500*time.Millisecond)
	v.SetDefault("command_delay", 100*time.Millisecond)

	_ = v.ReadInConfig() // no config file is fine

	set := map[string]bool{}
	flags.Visit(func(f *flag.Flag) { set[f.Name] = true })
	for key, value := range flagValues {
		flagName := strings.ReplaceAll(key, ".", "-")
		if set[flagName] {
			v.Set(key, value)
		}
	}
	return v
}

// buildLogger assembles a console logger on stderr, plus a rotated JSON file
// when one is configured.
func buildLogger(level, file string) (*zap.Logger, error) {
	var lvl zapcore.Level
	if err := lvl.Set(level); err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}

	consoleCfg := zap.NewDevelopmentEncoderConfig()
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(consoleCfg), zapcore.Lock(os.Stderr), lvl),
	}

	if file != "" {
		rotated := zapcore.AddSync(&lumberjack.Logger{
			Filename:   file,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     30, // days
		})
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), rotated, lvl))
	}

	return zap.New(zapcore.NewTee(cores...)), nil
}

func run(ctx context.Context, cfg *viper.Viper, logger *zap.Logger, command string, args []string) error {
	if command == "ports" {
		return listPorts()
	}

	port := cfg.GetString("port")
	if port == "" {
		return fmt.Errorf("no serial port configured (use -port, SM360_PORT, or the config file)")
	}

	transport, err := device.OpenSerial(port)
	if err != nil {
		return err
	}

	session := device.New(transport,
		device.WithResponseTimeout(cfg.GetDuration("response_timeout")),
		device.WithCommandDelay(cfg.GetDuration("command_delay")),
		device.WithLogger(device.NewZapLogger(logger)),
	)
	defer func() { _ = session.Close() }()

	if _, err := session.Initialize(ctx); err != nil {
		return err
	}
	fmt.Printf("connected: %s (%s)\n", session.Identity(), port)

	switch command {
	case "status":
		return printStatus(ctx, session)
	case "brightness":
		return setBrightness(ctx, session, args)
	case "play":
		return playVideo(ctx, session, logger, args)
	case "stop":
		return session.Stop(ctx)
	case "theme":
		return changeTheme(ctx, cfg, session, logger, args)
	case "raw":
		return sendRaw(ctx, session, args)
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func listPorts() error {
	ports, err := device.ListPorts()
	if err != nil {
		return err
	}
	if len(ports) == 0 {
		fmt.Println("no serial ports found")
		return nil
	}
	for _, p := range ports {
		fmt.Println(p)
	}
	return nil
}

func printStatus(ctx context.Context, session *device.Session) error {
	fields, err := session.Status(ctx)
	if err != nil {
		return err
	}
	for i, f := range fields {
		fmt.Printf("field[%d] = %d\n", i, f)
	}
	return nil
}

func setBrightness(ctx context.Context, session *device.Session, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: brightness <0-255>")
	}
	level, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("brightness %q: not a number", args[0])
	}
	return session.SetBrightness(ctx, level)
}

func playVideo(ctx context.Context, session *device.Session, logger *zap.Logger, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: play <file.mp4>")
	}

	if err := session.Stop(ctx); err != nil {
		return err
	}
	loaded, err := session.LoadVideo(ctx, theme.Candidates(args[0]))
	if err != nil {
		return err
	}
	logger.Info("video located", zap.String("path", loaded.Path), zap.Int64("size", loaded.Size))

	if err := session.PlayVideo(ctx, loaded.Selector, loaded.Path); err != nil {
		return err
	}
	fmt.Printf("playing %s (%d bytes)\n", loaded.Path, loaded.Size)
	return nil
}

func changeTheme(ctx context.Context, cfg *viper.Viper, session *device.Session, logger *zap.Logger, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: theme <name>")
	}
	name := args[0]

	candidates := theme.Candidates(name + ".mp4")
	if root := cfg.GetString("library"); root != "" {
		lib := theme.NewLibrary(root)
		found, err := lib.Find(cfg.GetString("resolution"), name)
		if err != nil {
			return err
		}
		devicePath, err := lib.VideoPathFor(found)
		if err != nil {
			return err
		}
		candidates = theme.CandidatesForPath(devicePath)
	}

	changer := device.NewThemeChanger(session)
	changer.OnStateChange(func(state device.ChangeState) {
		logger.Info("theme change", zap.Stringer("state", state))
	})

	result, err := changer.ChangeTheme(ctx, name, candidates)
	if err != nil {
		return err
	}

	if result.Unconfirmed {
		fmt.Printf("theme %s started (playback unconfirmed)\n", name)
	} else {
		fmt.Printf("theme %s playing: %s (%d bytes)\n", name, result.Path, result.Size)
	}
	return nil
}

func sendRaw(ctx context.Context, session *device.Session, args []string) error {
	if len(args) < 1 || len(args) > 3 {
		return fmt.Errorf("usage: raw <opcode-hex> [subcmd-hex] [payload-hex]")
	}

	opcode, err := parseHexByte(args[0])
	if err != nil {
		return fmt.Errorf("opcode: %w", err)
	}

	subcmd := byte(0x01)
	if len(args) >= 2 {
		if subcmd, err = parseHexByte(args[1]); err != nil {
			return fmt.Errorf("subcmd: %w", err)
		}
	}

	var payload []byte
	if len(args) == 3 {
		if payload, err = hex.DecodeString(args[2]); err != nil {
			return fmt.Errorf("payload: %w", err)
		}
	}

	resp, err := session.SendRaw(ctx, opcode, subcmd, payload, true)
	var timeoutErr *device.TimeoutError
	if errors.As(err, &timeoutErr) {
		fmt.Println("no response")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Printf("response (%d bytes): %s\n", len(resp.Raw()), hex.EncodeToString(resp.Raw()))
	if text := resp.AsText(); text != "" {
		fmt.Printf("as text: %q\n", text)
	}
	return nil
}

func parseHexByte(s string) (byte, error) {
	n, err := strconv.ParseUint(strings.TrimPrefix(s, "0x"), 16, 8)
	if err != nil {
		return 0, err
	}
	return byte(n), nil
}

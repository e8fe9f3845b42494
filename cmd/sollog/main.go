package main

import (
	"flag"

	easy "git.fiblab.net/utils/logrus-easy-formatter"
	"github.com/sirupsen/logrus"

	"git.fiblab.net/sim/accessibility/sollog"
)

var (
	// 配置信息
	op       = flag.String("op", "", "operation [merge, feasibility, expand, clear]")
	inPath   = flag.String("in", "", "input solution log path")
	in2Path  = flag.String("in2", "", "second input solution log path (merge only)")
	outPath  = flag.String("out", "", "output solution log path")
	costPath = flag.String("cost", "", "user cost file path (feasibility only)")
	elements = flag.Int("elements", 0, "solution vector elements to append (expand only)")
	lowest   = flag.Bool("lowest", false, "take the lowest of conflicting values on merge")
	logLevel = flag.String("log-level", "info", "log level [debug, info, warn, error, fatal, panic]")

	LOG_LEVELS = map[string]logrus.Level{
		"debug": logrus.DebugLevel,
		"info":  logrus.InfoLevel,
		"warn":  logrus.WarnLevel,
		"error": logrus.ErrorLevel,
		"fatal": logrus.FatalLevel,
		"panic": logrus.PanicLevel,
	}
)

func main() {
	logrus.SetFormatter(&easy.Formatter{
		TimestampFormat: "2006-01-02 15:04:05.0000",
		LogFormat:       "[%module%] [%time%] [%lvl%] %msg%\n",
	})
	flag.Parse()
	if level, ok := LOG_LEVELS[*logLevel]; ok {
		logrus.SetLevel(level)
	} else {
		logrus.Fatalf("invalid log level: %s", *logLevel)
	}
	if *inPath == "" || *outPath == "" {
		logrus.Fatal("-in and -out are required")
	}

	l, err := sollog.Read(*inPath)
	if err != nil {
		logrus.Fatalf("failed to read %s: %v", *inPath, err)
	}

	switch *op {
	case "merge":
		if *in2Path == "" {
			logrus.Fatal("-in2 is required for merge")
		}
		other, err := sollog.Read(*in2Path)
		if err != nil {
			logrus.Fatalf("failed to read %s: %v", *in2Path, err)
		}
		conflicts := l.Merge(other, !*lowest)
		logrus.Infof("combined log contains %d entries (%d conflicting entries resolved)", l.Len(), conflicts)
	case "feasibility":
		if *costPath == "" {
			logrus.Fatal("-cost is required for feasibility")
		}
		uc, err := sollog.ReadUserCost(*costPath)
		if err != nil {
			logrus.Fatalf("failed to read %s: %v", *costPath, err)
		}
		l.UpdateFeasibility(uc)
		logrus.Infof("feasibility of %d entries re-evaluated against bound %v", l.Len(), uc.Percent*uc.Initial)
	case "expand":
		if *elements <= 0 {
			logrus.Fatal("-elements must be positive for expand")
		}
		l.Expand(*elements)
		logrus.Infof("%d entries expanded by %d elements", l.Len(), *elements)
	case "clear":
		removed := l.ClearUnknown()
		logrus.Infof("%d unknown entries cleared, %d entries remain", removed, l.Len())
	default:
		logrus.Fatalf("unknown operation: %q", *op)
	}

	if err := l.Write(*outPath); err != nil {
		logrus.Fatalf("failed to write %s: %v", *outPath, err)
	}
	logrus.Infof("output log written to %s", *outPath)
}

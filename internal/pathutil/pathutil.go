// Package pathutil manages application file paths and locations
package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/adrg/xdg"
)

// EnvVar suffixes every file name when set, keeping development data apart.
const EnvVar = "NETUPI_ENV"

// Paths holds all application path configurations.
type Paths struct {
	appDir         string
	configFileName string
	dbFileName     string
	sqliteFileName string
	statusFileName string
	logFileName    string

	// Computed absolute paths
	configFilePath string
	dbFilePath     string
	sqliteFilePath string
	statusFilePath string
	logFilePath    string
}

var (
	paths *Paths
	once  sync.Once
)

// Initialize must be called once at program startup.
func Initialize() error {
	var initErr error

	once.Do(func() {
		p := newPaths(os.Getenv(EnvVar))

		initErr = p.computePaths()
		if initErr == nil {
			paths = p
		}
	})

	return initErr
}

func newPaths(env string) *Paths {
	p := &Paths{
		appDir:         "netupi",
		configFileName: "config.yml",
		dbFileName:     "netupi.db",
		sqliteFileName: "netupi.sqlite",
		statusFileName: "status.json",
		logFileName:    "netupi.log",
	}

	if env = strings.TrimSpace(env); env != "" {
		p.configFileName = fmt.Sprintf("config_%s.yml", env)
		p.dbFileName = fmt.Sprintf("netupi_%s.db", env)
		p.sqliteFileName = fmt.Sprintf("netupi_%s.sqlite", env)
		p.statusFileName = fmt.Sprintf("status_%s.json", env)
		p.logFileName = fmt.Sprintf("netupi_%s.log", env)
	}

	return p
}

// Must panics if paths haven't been initialized.
func Must() *Paths {
	if paths == nil {
		panic("pathutil.Initialize() must be called before accessing paths")
	}

	return paths
}

func Dir() string {
	return Must().appDir
}

func ConfigFilePath() string {
	return Must().configFilePath
}

func DBFilePath() string {
	return Must().dbFilePath
}

func SQLiteFilePath() string {
	return Must().sqliteFilePath
}

func StatusFilePath() string {
	return Must().statusFilePath
}

func LogFilePath() string {
	return Must().logFilePath
}

func (p *Paths) computePaths() error {
	var err error

	relPath := filepath.Join(p.appDir, p.configFileName)

	p.configFilePath, err = xdg.ConfigFile(relPath)
	if err != nil {
		return err
	}

	dataDir, err := xdg.DataFile(p.appDir)
	if err != nil {
		return err
	}

	p.dbFilePath = filepath.Join(dataDir, p.dbFileName)
	p.sqliteFilePath = filepath.Join(dataDir, p.sqliteFileName)
	p.statusFilePath = filepath.Join(dataDir, p.statusFileName)
	p.logFilePath = filepath.Join(dataDir, "log", p.logFileName)

	return nil
}

// StripExtension returns the input file name without its extension.
func StripExtension(fileName string) string {
	return fileName[:len(fileName)-len(filepath.Ext(fileName))]
}

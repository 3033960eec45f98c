package log

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

var (
	WarningLog *log.Logger
	InfoLog    *log.Logger
	ErrorLog   *log.Logger
)

var logFileName = filepath.Join(os.TempDir(), "notedeck.log")

var globalLogFile *os.File

func init() {
	// Loggers are usable before Initialize so packages can log from tests.
	discard(io.Discard)
}

func discard(w io.Writer) {
	InfoLog = log.New(w, "INFO:", log.Ldate|log.Ltime|log.Lshortfile)
	WarningLog = log.New(w, "WARNING:", log.Ldate|log.Ltime|log.Lshortfile)
	ErrorLog = log.New(w, "ERROR:", log.Ldate|log.Ltime|log.Lshortfile)
}

// Initialize should be called once at the beginning of the program to set up
// logging. The terminal is owned by the UI, so everything goes to a file.
func Initialize() {
	f, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		panic(fmt.Sprintf("could not open log file: %s", err))
	}

	discard(f)
	globalLogFile = f
	InitDebug()
}

// Close flushes the log files. Call it once at exit.
func Close() {
	CloseDebug()
	if globalLogFile == nil {
		return
	}
	_ = globalLogFile.Close()
	globalLogFile = nil
	// Point back at io.Discard so late writes after Close don't hit a closed file.
	discard(io.Discard)
	fmt.Println("wrote logs to " + logFileName)
}

// FileName returns the path of the main log file.
func FileName() string {
	return logFileName
}

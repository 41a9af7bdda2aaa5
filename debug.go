package main

import (
	"log"
	"os"
)

var debugLogger *log.Logger

func debugLog(format string, v ...interface{}) {
	if debugLogger != nil {
		debugLogger.Printf(format, v...)
	}
}

// openDebugLog enables debug logging to the given file for the rest of
// the process. The caller owns closing the returned file.
func openDebugLog(path string) (*os.File, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}
	debugLogger = log.New(file, "", log.LstdFlags|log.Lmicroseconds)
	return file, nil
}

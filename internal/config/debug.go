package config

import "os"

func IsDebug() bool {
	return os.Getenv("AILEAN_DEBUG") == "1"
}

package main

import "github.com/ttodiocomunicaciones-ux/Mundo-AI-News/cmd"

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cmd.SetVersionInfo(version, commit, date)
	cmd.Execute()
}

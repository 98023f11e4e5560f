package cli

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/diillson/rvtools-costing-go/pkg/version"
)

// displayWelcomeBanner exibe o banner de boas-vindas com informações de versão.
func displayWelcomeBanner(versionStr string) {
	banner := `
         /$$$$$$$  /$$    /$$ /$$$$$$$$                  /$$
        | $$__  $$| $$   | $$|__  $$__/                 | $$
        | $$  \ $$| $$   | $$   | $$  /$$$$$$   /$$$$$$ | $$  /$$$$$$$
        | $$$$$$$/|  $$ / $$/   | $$ /$$__  $$ /$$__  $$| $$ /$$_____/
        | $$__  $$ \  $$ $$/    | $$| $$  \ $$| $$  \ $$| $$|  $$$$$$
        | $$  \ $$  \  $$$/     | $$| $$  | $$| $$  | $$| $$ \____  $$
        | $$  | $$   \  $/      | $$|  $$$$$$/|  $$$$$$/| $$ /$$$$$$$/
        |__/  |__/    \_/       |__/ \______/  \______/ |__/|_______/
                      C o s t i n g   f o r   O r a c l e   C l o u d
        `
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	blue := color.New(color.FgBlue, color.Bold).SprintFunc()

	fmt.Println(red(banner))

	// Obtem a string formatada da versão através do pacote version
	formattedVersion := version.FormatVersion()
	fmt.Println(blue(fmt.Sprintf("RVTools Costing CLI (v%s)", formattedVersion)))
}

package display

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	bannerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true)
	versionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// PrintBanner prints the startup banner and version to stdout.
func PrintBanner(version string) {
	fmt.Fprintln(os.Stdout, bannerStyle.Render(` _    _ _     ___       _
| |  | | |   |   \ __ _| |_ __ _
| |/\| | |__ | |) / _`+"`"+` |  _/ _`+"`"+` |
|__/\__|____||___/\__,_|\__\__,_|`))
	fmt.Fprintln(os.Stdout, versionStyle.Render("Wonderlands pakfile unpacker v"+version))
	fmt.Fprintln(os.Stdout)
}

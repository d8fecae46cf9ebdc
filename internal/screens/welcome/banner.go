package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizbox/internal/ui/theme"
)

const bannerArt = `
  ██████╗ ██╗   ██╗██╗███████╗██████╗  ██████╗ ██╗  ██╗
 ██╔═══██╗██║   ██║██║╚══███╔╝██╔══██╗██╔═══██╗╚██╗██╔╝
 ██║   ██║██║   ██║██║  ███╔╝ ██████╔╝██║   ██║ ╚███╔╝
 ██║▄▄ ██║██║   ██║██║ ███╔╝  ██╔══██╗██║   ██║ ██╔██╗
 ╚██████╔╝╚██████╔╝██║███████╗██████╔╝╚██████╔╝██╔╝ ██╗
  ╚══▀▀═╝  ╚═════╝ ╚═╝╚══════╝╚═════╝  ╚═════╝ ╚═╝  ╚═╝`

const bannerCompact = "Q U I Z B O X"

// bannerMinWidth is the narrowest terminal that fits the block banner.
const bannerMinWidth = 58

// RenderBanner returns the QUIZBOX banner styled in the primary color.
// Uses a compact fallback for narrow terminals.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < bannerMinWidth {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}

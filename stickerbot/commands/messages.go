package commands

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/silenole/stickerbot/stickerbot/config"
	"github.com/silenole/stickerbot/stickerbot/database/models"
	"github.com/silenole/stickerbot/stickerbot/economy"
	"github.com/silenole/stickerbot/stickerbot/economy/sampler"
)

const (
	msgGenericFailure = "❌ Hubo un error procesando tu mensaje. Inténtalo más tarde."
	msgPackFailure    = "❌ Error al abrir el sobre. Inténtalo más tarde."
	msgAlbumFailure   = "❌ Error al generar el enlace del álbum."
	msgCatalogEmpty   = "❌ No hay cromos disponibles en este momento."
)

func renderHelp(wake string, table Table, cooldown time.Duration) string {
	var b strings.Builder
	b.WriteString("🤖 *SileNole Bot - Comandos disponibles:*\n\n")
	fmt.Fprintf(&b, "📦 *%s %s* - Abre un sobre de cromos (%s)\n", wake, table.Keyword(config.CommandOpenPack), packFrequency(cooldown))
	fmt.Fprintf(&b, "📖 *%s %s* - Ve tu colección completa\n", wake, table.Keyword(config.CommandViewAlbum))
	fmt.Fprintf(&b, "❓ *%s %s* - Muestra esta ayuda\n\n", wake, table.Keyword(config.CommandHelp))
	b.WriteString("🎯 ¡Colecciona todos los cromos de La Liga 2024-25!")
	return b.String()
}

func renderUnrecognized(wake string, table Table, suggestion *Command) string {
	msg := fmt.Sprintf("🤖 Comando no reconocido. Escribe \"%s %s\" para ver los comandos disponibles.",
		wake, table.Keyword(config.CommandHelp))
	if suggestion != nil {
		msg += fmt.Sprintf("\n¿Quisiste decir \"%s %s\"?", wake, suggestion.Keyword)
	}
	return msg
}

func renderCooldown(hours int) string {
	unit := "horas"
	if hours == 1 {
		unit = "hora"
	}
	return fmt.Sprintf("⏰ Debes esperar %d %s antes de abrir otro sobre. ¡La espera vale la pena! 📦✨", hours, unit)
}

func renderPack(res *economy.PackResult, cooldown time.Duration) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🎉 ¡%s ha abierto un sobre!\n\n", res.User.Username)
	b.WriteString("📦 *Cromos obtenidos:*\n")

	for _, s := range byRarity(res.Stickers) {
		rarity := sampler.ParseRarity(s.Rarity)
		b.WriteString(rarity.Emoji())
		b.WriteByte(' ')
		b.WriteString(stickerLabel(s))
		b.WriteByte('\n')
	}

	fmt.Fprintf(&b, "\n✨ ¡Próximo sobre disponible en %s!", spanishDuration(cooldown))
	return b.String()
}

func renderAlbum(res *economy.AlbumResult, ttl time.Duration) string {
	var b strings.Builder
	b.WriteString("📖 *Tu álbum personalizado*\n\n")
	b.WriteString("🔗 Haz clic aquí para ver tu colección:\n")
	b.WriteString(res.Token.URL)
	fmt.Fprintf(&b, "\n\n⚠️ Este enlace expira en %s y solo puede usarse una vez.", spanishDuration(ttl))
	return b.String()
}

func packFrequency(cooldown time.Duration) string {
	if cooldown == 24*time.Hour {
		return "1 por día"
	}
	return "1 cada " + spanishDuration(cooldown)
}

// spanishDuration renders d in the largest whole unit that divides it.
func spanishDuration(d time.Duration) string {
	plural := func(n int64, one, many string) string {
		if n == 1 {
			return fmt.Sprintf("%d %s", n, one)
		}
		return fmt.Sprintf("%d %s", n, many)
	}
	switch {
	case d >= time.Hour && d%time.Hour == 0:
		return plural(int64(d/time.Hour), "hora", "horas")
	case d >= time.Minute && d%time.Minute == 0:
		return plural(int64(d/time.Minute), "minuto", "minutos")
	default:
		return plural(int64(d.Round(time.Second)/time.Second), "segundo", "segundos")
	}
}

func stickerLabel(s *models.Sticker) string {
	name := s.PlayerName
	if name == "" {
		name = fmt.Sprintf("Cromo #%d", s.ID)
	}
	if s.Team == "" {
		return name
	}
	return fmt.Sprintf("%s (%s)", name, s.Team)
}

// byRarity orders stickers legendary first, keeping draw order within a tier.
func byRarity(stickers []*models.Sticker) []*models.Sticker {
	rank := make(map[sampler.Rarity]int, len(sampler.Tiers))
	for i, r := range sampler.Tiers {
		rank[r] = i
	}

	out := append([]*models.Sticker(nil), stickers...)
	sort.SliceStable(out, func(i, j int) bool {
		return rank[sampler.ParseRarity(out[i].Rarity)] > rank[sampler.ParseRarity(out[j].Rarity)]
	})
	return out
}

package request

import (
	"fmt"
	"strings"

	"guildledger"
	"guildledger/resource"
)

const colorComplete = 0x00ff00

func bulletLines(items []resource.Quantity) string {
	lines := make([]string, 0, len(items))
	for _, it := range items {
		lines = append(lines, fmt.Sprintf("• %d x %s", it.Amount, it.Name))
	}
	return strings.Join(lines, "\n")
}

// previewBody renders the pre-conversion parse result, spelling out any
// water-to-corpse conversions, including ones that round down to nothing.
func previewBody(parsed []resource.Quantity) string {
	lines := make([]string, 0, len(parsed))
	for _, it := range parsed {
		if it.Name == "water" {
			corpses := it.Amount / resource.WaterPerCorpse
			lines = append(lines, fmt.Sprintf("• Converted: %d x water → %d x corpse", it.Amount, corpses))
			continue
		}
		lines = append(lines, fmt.Sprintf("• %d x %s", it.Amount, it.Name))
	}
	return strings.Join(lines, "\n")
}

func startMessage(product string) guildledger.Message {
	return guildledger.Message{
		Content: fmt.Sprintf(
			"✅ Request started for **%s**.\nNow add resources with `/request bulk_add`, then finalize with `/request finish`.",
			product,
		),
	}
}

func bulkAddMessage(preview string) guildledger.Message {
	return guildledger.Message{
		Content: fmt.Sprintf(
			"✅ Resources recorded.\n```%s```\nNow finalize your request with `/request finish`.",
			preview,
		),
	}
}

// updateEmbed is the completed/remaining report shown by live previews and
// posted-thread refreshes.
func updateEmbed(product string, completed, remaining []resource.Quantity) guildledger.Embed {
	compText := "None yet…"
	if len(completed) > 0 {
		compText = bulletLines(completed)
	}
	remText := "✅ All materials are now available!"
	if len(remaining) > 0 {
		remText = bulletLines(remaining)
	}

	embed := guildledger.Embed{
		Title: fmt.Sprintf("🔄 Update for **%s**", product),
		Fields: []guildledger.EmbedField{
			{Name: "✅ Completed", Value: compText},
			{Name: "🛠️ Remaining", Value: remText},
		},
	}
	if len(remaining) == 0 {
		embed.Description = "All requested materials are in stock — you can now run `/request finish`!"
	}
	return embed
}

func requestEmbed(product string, items []resource.Quantity) guildledger.Embed {
	return guildledger.Embed{
		Title: fmt.Sprintf("🔷 CRAFTING REQUEST: %s", product),
		Fields: []guildledger.EmbedField{
			{Name: "🛠️ Request Materials:", Value: bulletLines(items)},
		},
	}
}

func welcomeMessage() guildledger.Message {
	return guildledger.Message{
		Content: "🛠 Please bring the materials to the Guild base for crafting. \n\n" +
			"Post below with what you've donated/contributed so we know the progress.\n\n" +
			"Let us know if you need help locating any of the resources on the list.",
	}
}

func buttonsMessage(requestID string) guildledger.Message {
	return guildledger.Message{
		Buttons: []guildledger.Button{
			{Label: "Update", CustomID: "request_update:" + requestID, Style: guildledger.ButtonPrimary},
			{Label: "Complete", CustomID: "request_complete:" + requestID, Style: guildledger.ButtonSuccess},
		},
	}
}

func completeEmbed(product string) guildledger.Embed {
	return guildledger.Embed{
		Title:       "✅ CRAFTING COMPLETE",
		Description: fmt.Sprintf("%s is complete. All materials have been submitted.", product),
		Color:       colorComplete,
	}
}

package discord

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/KirkDiggler/improbability/internal/games/cointoss"
	"github.com/KirkDiggler/improbability/internal/services/game"
	"github.com/KirkDiggler/improbability/internal/services/messaging"
	"github.com/bwmarrin/discordgo"
)

// Button IDs
const (
	// Game menu
	ButtonPlayCoinToss = "machine_coin_toss"
	ButtonSave         = "machine_save"
	ButtonStats        = "machine_stats"

	// Coin toss table
	ButtonStart       = "coin_start"
	ButtonFlip        = "coin_flip"
	ButtonSelectHeads = "coin_heads"
	ButtonSelectTails = "coin_tails"
	ButtonEndBet      = "coin_end_bet"
	ButtonBuyout      = "coin_buyout"
	ButtonRefresh     = "coin_refresh"
	ButtonLeaveTable  = "coin_leave"
)

// Embed colours
const (
	colorMenu  = 0x5865f2
	colorTable = 0x00ff00
	colorWarn  = 0xffa500
	colorError = 0xff0000
)

// tableButtonCommands maps each coin toss button to the command it sends
var tableButtonCommands = map[string]string{
	ButtonStart:       "start",
	ButtonFlip:        "flip",
	ButtonSelectHeads: "select heads",
	ButtonSelectTails: "select tails",
	ButtonEndBet:      "end bet",
	ButtonBuyout:      "buyout",
	ButtonRefresh:     "wait",
	ButtonLeaveTable:  "quit",
}

// renderer turns game snapshots into Discord messages
type renderer struct {
	messagingService messaging.Service
}

// notes returns the messages announcing what happened during a call
func (r *renderer) notes(ctx context.Context, snapshot *game.Snapshot, resolutions []*cointoss.Resolution, buyoutPaid float64) []string {
	var notes []string

	for _, resolution := range resolutions {
		message, err := r.messagingService.GetBetResultMessage(ctx, &messaging.GetBetResultMessageInput{
			PlayerName:    snapshot.PlayerName,
			GameName:      cointoss.GameName,
			Bet:           resolution.Bet,
			Won:           resolution.Won,
			Paid:          resolution.Paid,
			Manipulations: resolution.Manipulations,
			KickedOut:     resolution.KickedOut,
		})
		if err != nil {
			continue
		}
		notes = append(notes, fmt.Sprintf("**%s** %s", message.Title, message.Message))
	}

	if buyoutPaid > 0 {
		notes = append(notes, fmt.Sprintf("Paid %s to get back in.", messaging.FormatMoney(buyoutPaid)))
	}

	if snapshot.GameOver {
		message, err := r.messagingService.GetGameOverMessage(ctx, &messaging.GetGameOverMessageInput{
			PlayerName: snapshot.PlayerName,
			Money:      snapshot.Money,
		})
		if err == nil {
			notes = append(notes, fmt.Sprintf("**%s** %s", message.Title, message.Message))
		}
	}

	return notes
}

// errorEmbed explains a rejected action
func (r *renderer) errorEmbed(ctx context.Context, err error) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       "Error",
		Description: err.Error(),
		Color:       colorError,
	}

	message, msgErr := r.messagingService.GetErrorMessage(ctx, &messaging.GetErrorMessageInput{
		Err:           err,
		PreferredTone: messaging.ToneFunny,
	})
	if msgErr == nil {
		embed.Title = message.Title
		embed.Description = message.Message
	}

	return embed
}

// render picks the menu or the table view for the player's location
func (r *renderer) render(ctx context.Context, snapshot *game.Snapshot, notes []string) (*discordgo.MessageEmbed, []discordgo.MessageComponent) {
	if snapshot.Location == game.LocationCoinToss && !snapshot.GameOver {
		return r.tableEmbed(ctx, snapshot, notes), tableButtons(snapshot)
	}
	return menuEmbed(snapshot, notes), menuButtons(snapshot)
}

// menuEmbed shows the player's economy between minigames
func menuEmbed(snapshot *game.Snapshot, notes []string) *discordgo.MessageEmbed {
	color := colorMenu
	if snapshot.GameOver {
		color = colorError
	}

	return &discordgo.MessageEmbed{
		Title:       "The Improbability Machine",
		Description: strings.Join(notes, "\n"),
		Color:       color,
		Fields:      economyFields(snapshot),
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("%s | played %s", snapshot.PlayerName, snapshot.GameLength.Truncate(time.Second)),
		},
	}
}

// tableEmbed shows the coin toss table
func (r *renderer) tableEmbed(ctx context.Context, snapshot *game.Snapshot, notes []string) *discordgo.MessageEmbed {
	table := snapshot.CoinToss
	color := colorTable

	var status string
	switch table.State {
	case cointoss.StateStartBet:
		status = fmt.Sprintf("The coin is in the air... (%.1fs)", table.StartBetRemaining)
	case cointoss.StateInBet:
		status = fmt.Sprintf("The coin shows **%s**. %.1fs left.", coinFace(table.Result), table.BetTimeRemaining)
	default:
		status = "Place your bet with `/machine bet` and press Start."
	}

	if table.KickedOut {
		color = colorWarn
		status = "You've been kicked out."
		message, err := r.messagingService.GetKickoutMessage(ctx, &messaging.GetKickoutMessageInput{
			GameName:  cointoss.GameName,
			Remaining: table.KickoutRemaining,
			Buyout:    table.Buyout,
		})
		if err == nil {
			status = message.Message
		}
	}

	lines := append([]string{}, notes...)
	lines = append(lines, status)

	fields := economyFields(snapshot)
	fields = append(fields,
		&discordgo.MessageEmbedField{
			Name:   "Bet",
			Value:  fmt.Sprintf("%s\n(%s to %s)", messaging.FormatMoney(table.CurrentBet), messaging.FormatMoney(table.BetMin), messaging.FormatMoney(table.BetMax)),
			Inline: true,
		},
		&discordgo.MessageEmbedField{
			Name:   "Payout",
			Value:  fmt.Sprintf("x%.2f", table.Payout),
			Inline: true,
		},
		&discordgo.MessageEmbedField{
			Name:   "Heads Chance",
			Value:  fmt.Sprintf("%.0f%%", table.HeadsChance*100),
			Inline: true,
		},
	)

	return &discordgo.MessageEmbed{
		Title:       cointoss.GameName,
		Description: strings.Join(lines, "\n"),
		Color:       color,
		Fields:      fields,
	}
}

// statsEmbed shows a player's betting history
func statsEmbed(playerName string, output *game.GetStatsOutput) *discordgo.MessageEmbed {
	stats := output.Stats

	winRate := 0.0
	if stats.Bets > 0 {
		winRate = float64(stats.Wins) / float64(stats.Bets) * 100
	}

	fields := []*discordgo.MessageEmbedField{
		{Name: "Bets", Value: fmt.Sprintf("%d", stats.Bets), Inline: true},
		{Name: "Win Rate", Value: fmt.Sprintf("%.0f%%", winRate), Inline: true},
		{Name: "Kickouts", Value: fmt.Sprintf("%d", stats.Kickouts), Inline: true},
		{Name: "Wagered", Value: messaging.FormatMoney(stats.TotalWagered), Inline: true},
		{Name: "Paid Out", Value: messaging.FormatMoney(stats.TotalPaid), Inline: true},
	}

	var recent []string
	for _, record := range output.Recent {
		outcome := "lost"
		if record.Won {
			outcome = fmt.Sprintf("won %s", messaging.FormatMoney(record.Paid))
		}
		if record.KickedOut {
			outcome += ", kicked out"
		}
		recent = append(recent, fmt.Sprintf("<t:%d:R> %s bet, %s", record.Timestamp.Unix(), messaging.FormatMoney(record.Bet), outcome))
	}
	if len(recent) > 0 {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  "Recent Bets",
			Value: strings.Join(recent, "\n"),
		})
	}

	return &discordgo.MessageEmbed{
		Title:  fmt.Sprintf("%s's History", playerName),
		Color:  colorMenu,
		Fields: fields,
	}
}

func economyFields(snapshot *game.Snapshot) []*discordgo.MessageEmbedField {
	return []*discordgo.MessageEmbedField{
		{
			Name:   "Money",
			Value:  messaging.FormatMoney(snapshot.Money),
			Inline: true,
		},
		{
			Name:   "Entropy",
			Value:  fmt.Sprintf("%.1f / %.0f b", snapshot.Entropy, snapshot.EntropyCap),
			Inline: true,
		},
		{
			Name:   "Machine Level",
			Value:  fmt.Sprintf("%g", snapshot.MachineLevel),
			Inline: true,
		},
	}
}

// menuButtons offers the minigames and housekeeping
func menuButtons(snapshot *game.Snapshot) []discordgo.MessageComponent {
	if snapshot.GameOver {
		return nil
	}

	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{Label: "Coin Toss", Style: discordgo.PrimaryButton, CustomID: ButtonPlayCoinToss},
				discordgo.Button{Label: "Save", Style: discordgo.SecondaryButton, CustomID: ButtonSave},
				discordgo.Button{Label: "History", Style: discordgo.SecondaryButton, CustomID: ButtonStats},
			},
		},
	}
}

// tableButtons offers the actions the table accepts in its current state
func tableButtons(snapshot *game.Snapshot) []discordgo.MessageComponent {
	table := snapshot.CoinToss
	refresh := discordgo.Button{Label: "Refresh", Style: discordgo.SecondaryButton, CustomID: ButtonRefresh}

	var buttons []discordgo.MessageComponent
	switch {
	case table.State == cointoss.StateInBet:
		buttons = []discordgo.MessageComponent{
			discordgo.Button{Label: "Flip", Style: discordgo.PrimaryButton, CustomID: ButtonFlip},
			discordgo.Button{Label: "Heads", Style: discordgo.SuccessButton, CustomID: ButtonSelectHeads},
			discordgo.Button{Label: "Tails", Style: discordgo.DangerButton, CustomID: ButtonSelectTails},
			discordgo.Button{Label: "End Bet", Style: discordgo.SecondaryButton, CustomID: ButtonEndBet},
			refresh,
		}
	case table.State == cointoss.StateStartBet:
		buttons = []discordgo.MessageComponent{refresh}
	case table.KickedOut:
		buttons = []discordgo.MessageComponent{
			discordgo.Button{
				Label:    fmt.Sprintf("Buy Out (%s)", messaging.FormatMoney(table.Buyout)),
				Style:    discordgo.DangerButton,
				CustomID: ButtonBuyout,
			},
			refresh,
			discordgo.Button{Label: "Leave", Style: discordgo.SecondaryButton, CustomID: ButtonLeaveTable},
		}
	default:
		buttons = []discordgo.MessageComponent{
			discordgo.Button{Label: "Start", Style: discordgo.PrimaryButton, CustomID: ButtonStart},
			refresh,
			discordgo.Button{Label: "Leave", Style: discordgo.SecondaryButton, CustomID: ButtonLeaveTable},
		}
	}

	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: buttons},
	}
}

func coinFace(heads bool) string {
	if heads {
		return "Heads"
	}
	return "Tails"
}

func upgradeMessageInput(output *game.UpgradeMachineOutput) *messaging.GetUpgradeMessageInput {
	return &messaging.GetUpgradeMessageInput{
		Levels:     output.Levels,
		EntropyCap: output.Snapshot.EntropyCap,
	}
}

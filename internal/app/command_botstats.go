package app

import (
	"fmt"
	"runtime"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/enzo405/Thanks/pkg/discord"
)

func (a *App) handleBotStats(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	embed := discord.Embed("", a.cfg.EmbedColor)
	embed.Title = "Bot statistics"
	embed.Fields = []*discordgo.MessageEmbedField{
		{Name: "Uptime", Value: time.Since(a.startedAt).Round(time.Second).String(), Inline: true},
		{Name: "Guilds", Value: fmt.Sprintf("%d", len(s.State.Guilds)), Inline: true},
		{Name: "Gateway latency", Value: s.HeartbeatLatency().Round(time.Millisecond).String(), Inline: true},
	}

	if hostInfo, err := host.Info(); err == nil {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "Host",
			Value:  fmt.Sprintf("%s (%s), up %s", hostInfo.Hostname, hostInfo.Platform, (time.Duration(hostInfo.Uptime) * time.Second).String()),
			Inline: false,
		})
	}
	if memInfo, err := mem.VirtualMemory(); err == nil {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "Memory",
			Value:  fmt.Sprintf("%.1f%% of %d MiB", memInfo.UsedPercent, memInfo.Total/1024/1024),
			Inline: true,
		})
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
		Name:   "Go runtime",
		Value:  fmt.Sprintf("%s, %d goroutines, %d MiB allocated", runtime.Version(), runtime.NumGoroutine(), m.Alloc/1024/1024),
		Inline: true,
	})

	return respondEmbed(s, i, embed)
}

// Package announce posts ladder events to a Discord channel. It is
// strictly one-way, nothing is read back from the channel.
package announce

import (
	"fmt"
	"log"
	"strings"

	"github.com/jillest/goladder/internal/back"
	"github.com/jillest/goladder/internal/rating"

	"github.com/bwmarrin/discordgo"
)

type Announcer struct {
	dg        *discordgo.Session
	channelID string
	sys       rating.System
}

// New returns a nil Announcer when the token or channel is empty, every
// method of a nil Announcer is a no-op.
func New(token, channelID string, sys rating.System) (*Announcer, error) {
	if token == "" || channelID == "" {
		log.Print("info: Discord announcements disabled")
		return nil, nil
	}

	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, err
	}

	if err := dg.Open(); err != nil {
		return nil, err
	}

	return &Announcer{
		dg:        dg,
		channelID: channelID,
		sys:       sys,
	}, nil
}

func (a *Announcer) Close() error {
	if a == nil {
		return nil
	}

	return a.dg.Close()
}

// AnnouncePairings posts the freshly created pairings of a round.
func (a *Announcer) AnnouncePairings(round back.Round, pairings []back.Pairing) {
	if a == nil || len(pairings) == 0 {
		return
	}

	var buf strings.Builder
	fmt.Fprintf(&buf, "Pairings for the round of %s:\n", round.Date)
	for _, v := range pairings {
		fmt.Fprintf(
			&buf, "%s (%s) vs. %s (%s), handicap %s\n",
			v.White.Name, a.sys.Rank(v.White.CurrentRating),
			v.Black.Name, a.sys.Rank(v.Black.CurrentRating),
			v.Handicap,
		)
	}

	if _, err := a.dg.ChannelMessageSend(a.channelID, buf.String()); err != nil {
		log.Printf("error: could not announce pairings: %s", err)
	}
}

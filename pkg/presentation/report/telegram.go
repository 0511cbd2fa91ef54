// Copyright (c) 2024, The Tor Project, Inc.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"github.com/kishikawakatsumi/applelocalization-citools/internal"
	tb "gopkg.in/telebot.v3"
)

// TelegramNotifier posts run summaries to a single chat.  The bot never
// polls for updates.
type TelegramNotifier struct {
	bot  *tb.Bot
	chat tb.ChatID
}

func NewTelegramNotifier(cfg *internal.Telegram) (*TelegramNotifier, error) {
	bot, err := tb.NewBot(tb.Settings{
		Token:   cfg.Token,
		URL:     cfg.ApiURL,
		Offline: true,
	})
	if err != nil {
		return nil, err
	}
	return &TelegramNotifier{bot: bot, chat: tb.ChatID(cfg.ChatID)}, nil
}

func (n *TelegramNotifier) Notify(text string) error {
	_, err := n.bot.Send(n.chat, text, &tb.SendOptions{DisableWebPagePreview: true})
	return err
}

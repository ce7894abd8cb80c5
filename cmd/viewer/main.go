// Viewer is a read-only inspector for the chat database. It opens Badger
// with the lock guard bypassed so it can run next to a live server.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"

	"chat-hall/domain"
	"chat-hall/domain/event"
)

func main() {
	dbPath := flag.String("db", "badger", "Path to badger DB")
	prefix := flag.String("prefix", "", "Prefix to scan (user:, chat:, sub:); empty scans everything")
	flag.Parse()

	opts := badger.DefaultOptions(*dbPath).
		WithReadOnly(true).
		WithBypassLockGuard(true).
		WithLoggingLevel(badger.WARNING)
	db, err := badger.Open(opts)
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	fmt.Println(color.New(color.BgBlack, color.FgGreen).Render(" chat-hall viewer (read-only) "))

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Key", "Type", "Detail"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	err = db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefixBytes := []byte(*prefix)
		for it.Seek(prefixBytes); it.ValidForPrefix(prefixBytes); it.Next() {
			item := it.Item()
			key := string(item.Key())

			err := item.Value(func(v []byte) error {
				rowType, detail := describe(key, v)
				table.Append([]string{key, rowType, detail})
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Fatal(err)
	}

	table.Render()
}

// describe decodes a row into a one-line summary based on its key prefix.
// Index keys carry no JSON payload, so they only echo their value.
func describe(key string, val []byte) (string, string) {
	switch {
	case strings.HasPrefix(key, "user:name:"), strings.HasPrefix(key, "user:email:"):
		return "INDEX", string(val)
	case strings.HasPrefix(key, "user:"):
		var u domain.User
		if err := json.Unmarshal(val, &u); err != nil {
			return "USER", fmt.Sprintf("decode error: %v", err)
		}
		role := "user"
		if u.IsAdmin {
			role = "admin"
		}
		return "USER", fmt.Sprintf("%s <%s> nick=%q role=%s avatar=%t",
			u.Username, u.Email, u.NickName, role, u.HasAvatar())
	case strings.HasPrefix(key, "sub:user:"):
		return "INDEX", ""
	case strings.HasPrefix(key, "sub:"):
		var s domain.Subscription
		if err := json.Unmarshal(val, &s); err != nil {
			return "SUB", fmt.Sprintf("decode error: %v", err)
		}
		return "SUB", fmt.Sprintf("user=%d chat=%d active=%t since=%s",
			s.UserID, s.ChatID, s.IsActive, s.SubscribedAt.Format(event.TimeLayout))
	case strings.HasPrefix(key, "chat:"):
		var c domain.Chat
		if err := json.Unmarshal(val, &c); err != nil {
			return "CHAT", fmt.Sprintf("decode error: %v", err)
		}
		detail := fmt.Sprintf("%q state=%s", c.Name, c.State())
		if c.Transcript != "" {
			detail += " transcript=" + c.Transcript
		}
		return "CHAT", detail
	default:
		return "RAW", fmt.Sprintf("%d bytes", len(val))
	}
}

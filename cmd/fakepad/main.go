// fakepad simulates one hardware pad without an arduino attached: it
// dials the server's pad port, waits for round maps and answers with
// random hit reports. Run two of them to exercise a full session.
package main

import (
	"bufio"
	"math/rand/v2"
	"net"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"wamserver/internal/game/item"
	"wamserver/internal/protocol"
)

const defaultServerAddr = "localhost:7777"

func uniform(m item.Map) bool {
	for _, it := range m {
		if it != m[0] {
			return false
		}
	}
	return true
}

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	addr := os.Getenv("WAM_PAD_ADDR")
	if addr == "" {
		addr = defaultServerAddr
	}

	conn, err := net.DialTimeout("tcp", addr, 5*time.Second)
	if err != nil {
		logger.Fatal("could not connect to server", zap.String("addr", addr), zap.Error(err))
	}
	defer conn.Close()
	logger.Info("connected as fake pad", zap.String("addr", addr))

	rng := rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), uint64(os.Getpid())))
	reader := bufio.NewReader(conn)

	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			logger.Fatal("server connection lost", zap.Error(err))
		}

		data, err := protocol.DecodeServerData(strings.TrimRight(line, "\r\n"))
		if err != nil {
			logger.Warn("ignoring unparseable frame", zap.String("frame", line), zap.Error(err))
			continue
		}
		logger.Info("round map received", zap.String("map", data.Encode()))

		if uniform(data.Map) {
			// Pad-bind blink (all tiles show the slot index); nothing to
			// whack, so no report goes back.
			continue
		}

		// A human takes a moment to whack; so does the fake.
		time.Sleep(time.Duration(200+rng.IntN(800)) * time.Millisecond)

		report := protocol.ClientData{HitIndex: protocol.NoIndex}
		if rng.IntN(2) == 1 {
			report.IsHit = true
			report.HitIndex = rng.IntN(9)
		}
		if _, err := conn.Write([]byte(report.Encode() + "\n")); err != nil {
			logger.Fatal("could not send report", zap.Error(err))
		}
		logger.Info("report sent", zap.String("report", report.Encode()))
	}
}

package launcher

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"time"

	cli "gopkg.in/urfave/cli.v1"

	"github.com/rony4d/go-streamkit/bitstream"
	"github.com/rony4d/go-streamkit/buffer"
	"github.com/rony4d/go-streamkit/flags"
	"github.com/rony4d/go-streamkit/logging"
	"github.com/rony4d/go-streamkit/meter"
	"github.com/rony4d/go-streamkit/sdp"
)

// Launch builds the CLI app and runs it with the given arguments.
func Launch(args []string) error {
	app := flags.NewApp()
	app.Flags = flags.CommonFlags()
	app.Before = setup
	app.Commands = []cli.Command{
		{
			Name:      "varint",
			Usage:     "decode a payload as a sequence of base-128 varints",
			ArgsUsage: "<hex>",
			Action:    varintCommand,
		},
		{
			Name:      "expg",
			Usage:     "decode a payload as a sequence of unsigned Exp-Golomb codes",
			ArgsUsage: "<hex>",
			Action:    expGolombCommand,
		},
		{
			Name:      "hexdump",
			Usage:     "print a payload as an offset-annotated hex dump",
			ArgsUsage: "<hex>",
			Action:    hexdumpCommand,
		},
		{
			Name:      "sdp",
			Usage:     "parse an SDP file and summarize its media sections",
			ArgsUsage: "<file>",
			Action:    sdpCommand,
		},
		{
			Name:   "meter",
			Usage:  "measure the byte rate of stdin until EOF",
			Action: meterCommand,
		},
	}
	return app.Run(args)
}

func varintCommand(ctx *cli.Context) error {
	payload, err := payloadArg(ctx)
	if err != nil {
		return err
	}
	r := buffer.NewReader(payload)
	for r.Available() > 0 {
		start := r.Position()
		v := r.ReadVarUint()
		fmt.Fprintf(ctx.App.Writer, "offset %3d  len %d  value %d\n", start, r.Position()-start, v)
	}
	return nil
}

func expGolombCommand(ctx *cli.Context) error {
	payload, err := payloadArg(ctx)
	if err != nil {
		return err
	}
	r := bitstream.NewReaderBytes(payload)
	r.Logger = logging.New("expg")
	for i := 0; r.Available() > 0; i++ {
		v := r.ReadExpGolomb()
		if r.Malformed() {
			return fmt.Errorf("corrupt exp-golomb stream at code %d", i)
		}
		fmt.Fprintf(ctx.App.Writer, "code %3d  value %d\n", i, v)
	}
	return nil
}

func hexdumpCommand(ctx *cli.Context) error {
	payload, err := payloadArg(ctx)
	if err != nil {
		return err
	}
	const width = 16
	r := buffer.NewReader(payload)
	for r.Available() > 0 {
		offset := r.Position()
		n := r.Available()
		if n > width {
			n = width
		}
		row := r.ReadBytes(n)
		fmt.Fprintf(ctx.App.Writer, "%08x  % x  %s\n", offset, row, printable(row))
	}
	return nil
}

// printable renders a row the way hexdump -C does: dots for non-ASCII.
func printable(row []byte) string {
	out := make([]byte, len(row))
	for i, b := range row {
		if b >= 0x20 && b < 0x7f {
			out[i] = b
		} else {
			out[i] = '.'
		}
	}
	return string(out)
}

func sdpCommand(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return fmt.Errorf("expected exactly one file argument")
	}
	raw, err := ioutil.ReadFile(ctx.Args().First())
	if err != nil {
		return err
	}
	session, err := sdp.Parse(string(raw))
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.App.Writer, "session %q, %d media section(s)\n", session.Name, len(session.Media))
	for _, m := range session.Media {
		fmt.Fprintf(ctx.App.Writer, "  m=%s port %d proto %s\n", m.Type, m.Port, m.Proto)
		for _, rm := range m.RTPMaps() {
			if rm.Channels > 0 {
				fmt.Fprintf(ctx.App.Writer, "    pt %3d  %s/%d/%d\n", rm.PayloadType, rm.Codec, rm.ClockRate, rm.Channels)
			} else {
				fmt.Fprintf(ctx.App.Writer, "    pt %3d  %s/%d\n", rm.PayloadType, rm.Codec, rm.ClockRate)
			}
		}
	}
	return nil
}

func meterCommand(ctx *cli.Context) error {
	log := logging.New("meter")
	m := meter.New(ctx.GlobalInt("meter.window"))

	buf := make([]byte, 32*1024)
	total := int64(0)
	lastReport := time.Now()
	for {
		n, err := os.Stdin.Read(buf)
		if n > 0 {
			m.Update(n)
			total += int64(n)
		}
		if now := time.Now(); now.Sub(lastReport) >= time.Second {
			log.Infof("rate %.0f B/s (avg %.0f, min %.0f, max %.0f)",
				m.Rate(), m.AvgRate(), m.MinRate(), m.MaxRate())
			lastReport = now
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
	}
	fmt.Fprintf(ctx.App.Writer, "total %d bytes, avg %.0f B/s over the last %d s\n",
		total, m.AvgRate(), ctx.GlobalInt("meter.window"))
	return nil
}

package mcp

import (
	"context"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/wsaver/internal/capture"
	"github.com/1broseidon/wsaver/internal/restore"
	"github.com/1broseidon/wsaver/internal/x11"
)

func (s *Server) handleSaveLayout(_ context.Context, _ *mcpsdk.CallToolRequest, args SaveLayoutInput) (*mcpsdk.CallToolResult, SaveLayoutOutput, error) {
	conn, err := x11.NewConnection()
	if err != nil {
		return nil, SaveLayoutOutput{}, err
	}
	defer conn.Close()

	p, err := capture.Snapshot(args.Name, conn, s.logger)
	if err != nil {
		return nil, SaveLayoutOutput{}, err
	}
	if err := s.store.Save(p); err != nil {
		return nil, SaveLayoutOutput{}, err
	}

	return nil, SaveLayoutOutput{
		Name:     p.Name,
		Windows:  len(p.Windows),
		Monitors: len(p.Layout),
	}, nil
}

func (s *Server) handleRestoreLayout(ctx context.Context, _ *mcpsdk.CallToolRequest, args RestoreLayoutInput) (*mcpsdk.CallToolResult, RestoreLayoutOutput, error) {
	p, err := s.store.Load(args.Name)
	if err != nil {
		return nil, RestoreLayoutOutput{}, err
	}

	conn, err := x11.NewConnection()
	if err != nil {
		return nil, RestoreLayoutOutput{}, err
	}
	defer conn.Close()

	timeout := s.config.Timeout
	if args.TimeoutSeconds > 0 {
		timeout = time.Duration(args.TimeoutSeconds) * time.Second
	}

	scheduler := restore.NewScheduler(conn, conn, restore.Options{
		Interval: s.config.PollInterval,
		Timeout:  timeout,
		Weights:  s.config.Weights,
		DryRun:   args.DryRun,
		Logger:   s.logger,
	})

	result, err := scheduler.Run(ctx, p)
	if err != nil {
		return nil, RestoreLayoutOutput{}, err
	}

	out := RestoreLayoutOutput{
		State: string(result.State),
		Polls: result.Polls,
	}
	for _, a := range result.Applied {
		out.Windows = append(out.Windows, RestoredWindow{WMClass: a.Record.WMClass, Title: a.Record.Title, Outcome: "applied"})
	}
	for _, f := range result.Failed {
		out.Windows = append(out.Windows, RestoredWindow{WMClass: f.Record.WMClass, Title: f.Record.Title, Outcome: "failed"})
	}
	for _, u := range result.Unmatched {
		out.Windows = append(out.Windows, RestoredWindow{WMClass: u.WMClass, Title: u.Title, Outcome: "unmatched"})
	}
	return nil, out, nil
}

func (s *Server) handleListProfiles(_ context.Context, _ *mcpsdk.CallToolRequest, _ struct{}) (*mcpsdk.CallToolResult, ListProfilesOutput, error) {
	names, err := s.store.List()
	if err != nil {
		return nil, ListProfilesOutput{}, err
	}
	return nil, ListProfilesOutput{Profiles: names}, nil
}

func (s *Server) handleDeleteProfile(_ context.Context, _ *mcpsdk.CallToolRequest, args DeleteProfileInput) (*mcpsdk.CallToolResult, DeleteProfileOutput, error) {
	if err := s.store.Delete(args.Name); err != nil {
		return nil, DeleteProfileOutput{}, err
	}
	return nil, DeleteProfileOutput{Deleted: true}, nil
}

func (s *Server) handleListWindows(_ context.Context, _ *mcpsdk.CallToolRequest, _ struct{}) (*mcpsdk.CallToolResult, ListWindowsOutput, error) {
	conn, err := x11.NewConnection()
	if err != nil {
		return nil, ListWindowsOutput{}, err
	}
	defer conn.Close()

	windows, err := conn.ListWindows()
	if err != nil {
		return nil, ListWindowsOutput{}, err
	}

	out := ListWindowsOutput{}
	for _, w := range windows {
		r := w.Record
		out.Windows = append(out.Windows, WindowInfo{
			Handle:     w.Handle,
			WMClass:    r.WMClass,
			WMInstance: r.WMInstance,
			Title:      r.Title,
			X:          r.Geometry.X,
			Y:          r.Geometry.Y,
			Width:      r.Geometry.Width,
			Height:     r.Geometry.Height,
			Desktop:    r.DesktopIndex,
		})
	}
	return nil, out, nil
}

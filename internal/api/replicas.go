package api

import (
	"context"
	"fmt"
)

// CreateReplica creates a new digital replica.
func (c *Client) CreateReplica(ctx context.Context, req ReplicaRequest) (*Replica, error) {
	var rep Replica
	if err := c.postJSON(ctx, "/replicas/", req, &rep); err != nil {
		return nil, err
	}
	return &rep, nil
}

// Replicas lists the user's replicas.
func (c *Client) Replicas(ctx context.Context) ([]Replica, error) {
	var reps []Replica
	if err := c.getJSON(ctx, "/replicas/", &reps); err != nil {
		return nil, err
	}
	return reps, nil
}

// Replica fetches one replica.
func (c *Client) Replica(ctx context.Context, id int) (*Replica, error) {
	var rep Replica
	if err := c.getJSON(ctx, fmt.Sprintf("/replicas/%d", id), &rep); err != nil {
		return nil, err
	}
	return &rep, nil
}

// UpdateReplica changes a replica's name or description.
func (c *Client) UpdateReplica(ctx context.Context, id int, req ReplicaRequest) (*Replica, error) {
	var rep Replica
	if err := c.putJSON(ctx, fmt.Sprintf("/replicas/%d", id), req, &rep); err != nil {
		return nil, err
	}
	return &rep, nil
}

// DeleteReplica removes a replica.
func (c *Client) DeleteReplica(ctx context.Context, id int) error {
	return c.deleteJSON(ctx, fmt.Sprintf("/replicas/%d", id), nil)
}

// TrainReplica starts a training run over the user's memories.
func (c *Client) TrainReplica(ctx context.Context, id int) (*ReplicaStats, error) {
	var stats ReplicaStats
	if err := c.postJSON(ctx, fmt.Sprintf("/replicas/%d/train", id), struct{}{}, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// ReplicaStats returns a replica's training state.
func (c *Client) ReplicaStats(ctx context.Context, id int) (*ReplicaStats, error) {
	var stats ReplicaStats
	if err := c.getJSON(ctx, fmt.Sprintf("/replicas/%d/stats", id), &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

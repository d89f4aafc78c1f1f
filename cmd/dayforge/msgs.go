package main

import (
	"github.com/dayforge/dayforge"
)

type SessionMsg struct {
	session dayforge.Session
	ok      bool
}

type DeviceCodeMsg struct {
	flow dayforge.SignInFlow
}

type SignedInMsg struct {
	session dayforge.Session
}

type SignedOutMsg struct{}

type TasksLoadedMsg struct {
	tasks []dayforge.Task
}

type TaskCreatedMsg struct {
	task dayforge.Task
}

type TaskUpdatedMsg struct {
	task dayforge.Task
}

type TaskDeletedMsg struct {
	id string
}

type ScheduleMsg struct {
	items []dayforge.ScheduleItem
}

// ErrorMsg carries the underlying error for the log and a generic notice for
// the user; error kinds are never surfaced in-band.
type ErrorMsg struct {
	err    error
	notice string
}

const (
	noticeLoad     = "Failed to load tasks. Please try again."
	noticeAdd      = "Failed to add task. Please try again."
	noticeUpdate   = "Failed to update task. Please try again."
	noticeDelete   = "Failed to delete task. Please try again."
	noticeGenerate = "Failed to generate schedule. Please try again."
	noticeSignIn   = "Sign-in failed. Please try again."
	noticeSignOut  = "Sign-out failed. Please try again."
)

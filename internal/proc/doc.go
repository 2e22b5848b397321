// Package proc launches and terminates the single wrapped child process.
//
// Graceful termination is a broadcast signal scoped to a process group, not
// a targeted message. On Unix the child is started in its own process group
// and signalled with SIGINT, so the supervisor is never a member of the
// signalled group. On Windows the child shares the supervisor's console and
// CTRL_C_EVENT is raised for the whole console group after the supervisor
// has disabled delivery of the event to itself. Forced termination is
// SIGKILL to the group on Unix and TerminateProcess on Windows.
package proc

package router

// HelpText is printed by the help keyword.
const HelpText = `Craifter - Session and Task Management Tool
Purpose: Manage tasks, sessions, and commands with persistence and playback.
Commands:
  addtodo <id> <task> [priority]  - Add a new todo item. Priority: low/medium/high (default: medium).
                                   Example: craifter addtodo fix_bug "Fix login issue" high
  updatetodo <id> <status>        - Update a todo's status. Status: pending/in_progress/completed.
                                   Example: craifter updatetodo fix_bug completed
  showtodos                       - Display all current todos.
  newsession <name>               - Create a new session (project) for organizing commands and notes.
                                   Example: craifter newsession web_deployment
  savecommand <session> <cmd>     - Save a command to a session for later execution.
                                   Example: craifter savecommand web_deployment 'git push origin main'
  savenote <session> <note>       - Save a note or description to a session.
                                   Example: craifter savenote web_deployment 'Deploy to production server'
  savedata <session> <text>       - Save a line of data to a session.
  saveresult <session> <text>     - Save a result line to a session.
  playback <session>              - Display saved commands and notes for a session, running each command.
                                   Example: craifter playback web_deployment
  listsessions                    - List all available sessions.
  runproject <session>            - Same as playback, but reports unknown sessions.
                                   Example: craifter runproject web_deployment
  exit                            - Exit the interactive mode.
Usage: craifter <command> or run interactively.
`

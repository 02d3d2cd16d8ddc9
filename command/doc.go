/*
Package command interprets the chat commands that change the bot's own
behaviour.

Grammar summary

All commands start with the trigger word, "versebot" unless configured
otherwise. Tokens are separated by whitespace.

    command = trigger [ scope ] [ verb [ arg ... ] ]
    help    = trigger | trigger "help"

    scope   = "daily" | "all"
    verb    = "enable" | "disable" | "status" | "reset" | "username" | "icon"
            | "time" | "channel" | "debug"

Grammar description

scope - selects the sections a verb applies to. Without a scope the verb
applies to the versebot section, "daily" selects the daily_verse section and
"all" selects both, in that order.

enable, disable - switch every selected section on or off.

status - report whether every selected section is on or off.

reset - forget everything stored in every selected section and leave it
switched off.

username - the remaining tokens, joined by spaces, become the name posts are
made under.

icon - a single token. A token wrapped in colons is an emoji, anything else
is an image URL. An image URL wins over an emoji when both are set.

time - daily scope only. Either one "hour[:minute[:second]]" token or up to
three separate tokens. Components that are not numbers fall back to 6, 0
and 0. Values are reduced into range when read back, so "25" means 1 AM.

channel - daily scope only. A single channel, either as a Slack channel
mention or as a name with or without the leading "#".

debug - dump every stored section except the credentials.

Every verb except status and debug writes the sections back once, after all
selected sections are updated.

Example

    versebot
    versebot help
    versebot all disable
    versebot username Verse Bot
    versebot icon :book:
    versebot daily time 7:30
    versebot daily time 7 30 15
    versebot daily channel <#C024BE91L|general>
*/
package command

// Copyright (c) 2026 The crikey authors
// released under the ISC license

package client

// Numerics maps the numerics the client understands to their names. Events
// for these are dispatched under the name; everything else under the
// command itself.
var Numerics = map[string]string{
	"001": "RPL_WELCOME",
	"002": "RPL_YOURHOST",
	"003": "RPL_CREATED",
	"004": "RPL_MYINFO",
	"005": "RPL_ISUPPORT",
	"332": "RPL_TOPIC",
	"353": "RPL_NAMREPLY",
	"366": "RPL_ENDOFNAMES",
	"372": "RPL_MOTD",
	"375": "RPL_MOTDSTART",
	"376": "RPL_ENDOFMOTD",
	"401": "ERR_NOSUCHNICK",
	"403": "ERR_NOSUCHCHANNEL",
	"422": "ERR_NOMOTD",
	"432": "ERR_ERRONEUSNICKNAME",
	"433": "ERR_NICKNAMEINUSE",
	"451": "ERR_NOTREGISTERED",
	"464": "ERR_PASSWDMISMATCH",
	"471": "ERR_CHANNELISFULL",
	"473": "ERR_INVITEONLYCHAN",
	"474": "ERR_BANNEDFROMCHAN",
	"475": "ERR_BADCHANNELKEY",
}

func eventName(command string) string {
	if name, exists := Numerics[command]; exists {
		return name
	}
	return command
}

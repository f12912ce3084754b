package site

// The fixed template set. The website page goes through html/template so
// every interpolated field is escaped for an HTML context; the bot project
// files are code and config and go through text/template untouched.

const indexHTMLTemplate = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>{{.CoinName}} — Launchpad</title>
  <meta name="description" content="{{.Tagline}}">
  <meta name="viewport" content="width=device-width,initial-scale=1">
  <style>
    body{font-family:Inter,system-ui;display:flex;min-height:100vh;align-items:center;justify-content:center;background:#0b1020;color:#e6f2ff}
    .card{max-width:900px;padding:24px;border-radius:16px;background:rgba(255,255,255,0.04);box-shadow:0 6px 24px rgba(2,6,23,0.6)}
    h1{font-size:36px;margin-bottom:8px}
    .lead{opacity:.9}
    .media{margin-top:16px}
    .links a{display:inline-block;margin-right:12px;background:#0f1724;padding:8px 12px;border-radius:8px;text-decoration:none;color:#9be7a1}
  </style>
</head>
<body>
  <div class="card">
    <h1>{{.CoinName}} <small>({{.Ticker}})</small></h1>
    <div class="lead">{{.IntroHTML}}</div>
{{- if .MediaPath}}
    <div class="media">
      <img src="{{.MediaPath}}" alt="hero" style="max-width:100%;border-radius:12px"/>
    </div>
{{- end}}
    <h3>Roadmap</h3>
    <div class="roadmap">{{.RoadmapHTML}}</div>
    <div class="links">
      <a href="{{.PumpFunURL}}">Buy on {{.Network}}</a>
      <a href="{{.WebsiteURL}}">Website</a>
      <a href="{{.XURL}}">X</a>
      <a href="{{.TelegramURL}}">Telegram</a>
    </div>
  </div>
</body>
</html>
`

const botMainTemplate = `import os, logging
from flask import Flask, request, abort
import telebot
from logic import BotLogic
from config import Config
from waitress import serve

logging.basicConfig(level=logging.INFO)
app = Flask(__name__)
bot = telebot.TeleBot(Config.BOT_TOKEN(), threaded=False)
logic = BotLogic(bot)


@app.route(f'/{Config.BOT_TOKEN()}', methods=['POST'])
def webhook():
    if request.headers.get('content-type') == 'application/json':
        json_string = request.get_data().decode('utf-8')
        update = telebot.types.Update.de_json(json_string)
        bot.process_new_updates([update])
        return "OK", 200
    abort(403)


@app.route('/health')
def health():
    return "", 204


if __name__ == '__main__':
    try:
        bot.remove_webhook()
        bot.set_webhook(url=f"{Config.WEBHOOK_BASE_URL()}/{Config.BOT_TOKEN()}")
    except Exception as e:
        logging.error(e)
    serve(app, host="0.0.0.0", port=int(os.environ.get("PORT", 10000)))
`

const botLogicTemplate = `import json, logging, os, random
from config import Config

logging.basicConfig(level=logging.INFO)


class BotLogic:
    def __init__(self, bot):
        self.bot = bot
        self.coin_name = os.environ.get("COIN_NAME", "{{.CoinName}}")
        self.ticker = os.environ.get("TICKER", "{{.Ticker}}")
        try:
            path = os.path.join(os.path.dirname(__file__), "bot_texts.json")
            with open(path, encoding="utf-8") as f:
                self.texts = json.load(f)
        except (OSError, ValueError):
            self.texts = {}

    def pick(self, category, fallback):
        lines = self.texts.get(category) or [fallback]
        return random.choice(lines)

    def greet(self, message):
        txt = self.pick("GREET_NEW_MEMBERS", "Welcome to %s! %s to the moon!" % (self.coin_name, self.ticker))
        self.bot.reply_to(message, txt)

    def hype(self, message):
        self.bot.reply_to(message, self.pick("HYPE", "LFG!"))

    def wisdom(self, message):
        self.bot.reply_to(message, self.pick("WISDOM", "Zoom out."))

    def scheduled_buy(self, chat_id):
        self.bot.send_message(chat_id, self.pick("SCHEDULED_BUY", "Community buy window is open."))
`

const botConfigTemplate = `import os


class Config:
    @staticmethod
    def BOT_TOKEN(): return os.environ.get("BOT_TOKEN")

    @staticmethod
    def WEBHOOK_BASE_URL(): return os.environ.get("WEBHOOK_BASE_URL", "")

    @staticmethod
    def GROUP_CHAT_ID(): return os.environ.get("GROUP_CHAT_ID")

    @staticmethod
    def CONTRACT_ADDRESS(): return os.environ.get("CONTRACT_ADDRESS", "")

    @staticmethod
    def PUMP_FUN_LINK(): return os.environ.get("PUMP_FUN_LINK", "{{.PumpFunURL}}")

    @staticmethod
    def WEBSITE_URL(): return os.environ.get("WEBSITE_URL", "{{.WebsiteURL}}")

    @staticmethod
    def TELEGRAM_URL(): return os.environ.get("TELEGRAM_URL", "{{.TelegramURL}}")
`

const dockerfileTemplate = `FROM python:3.11-slim
WORKDIR /app
COPY requirements.txt .
RUN pip install -r requirements.txt
COPY . .
CMD ["python3","main.py"]
`

const requirementsTemplate = `Flask==3.0.3
pyTelegramBotAPI==4.15.4
httpx==0.27.0
waitress==3.0.0
psycopg2-binary==2.9.9
`

const renderYAMLTemplate = `services:
  - type: web
    name: {{.ServiceName}}
    env: docker
    plan: free
    healthCheck:
      path: /health
`

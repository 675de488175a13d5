package envfile

// Template is the embedded fallback .env template, used when the working copy
// does not ship a .env.example. It mirrors the keys the application's
// settings module reads.
const Template = `# TradingBot V5 configuration
# Fill in every "your_*_here" value before starting the stack.

# Trading mode
PAPER_TRADING=true
USE_TESTNET=true
INITIAL_CAPITAL=10000

# AI decisions
ANTHROPIC_API_KEY=your_anthropic_api_key_here

# Exchanges
BINANCE_API_KEY=your_binance_api_key_here
BINANCE_API_SECRET=your_binance_api_secret_here
BYBIT_API_KEY=
BYBIT_API_SECRET=
OKX_API_KEY=
OKX_API_SECRET=
OKX_PASSPHRASE=
KUCOIN_API_KEY=
KUCOIN_API_SECRET=
KUCOIN_PASSPHRASE=
GATE_API_KEY=
GATE_API_SECRET=
MEXC_API_KEY=
MEXC_API_SECRET=

# News & sentiment
NEWSAPI_KEY=
CRYPTOPANIC_KEY=
LUNARCRUSH_KEY=
FINNHUB_KEY=
TWITTER_BEARER_TOKEN=
REDDIT_CLIENT_ID=
REDDIT_CLIENT_SECRET=

# Alerting
TELEGRAM_BOT_TOKEN=your_telegram_bot_token_here
TELEGRAM_CHAT_ID=your_telegram_chat_id_here

# Infrastructure
REDIS_URL=redis://redis:6379
`
